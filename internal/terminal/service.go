package terminal

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type Command struct {
	Command string
	Args    []string
	Dir     string
}

func NewCommand(command string, args ...string) *Command {
	return &Command{
		Command: command,
		Args:    args,
	}
}

func (c *Command) Execute() (string, error) {
	cmd := exec.Command(c.Command, c.Args...)

	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("command failed: %v\nStderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Whoami returns the local username, falling back to "user" when the
// command is unavailable.
func Whoami() string {
	name, err := NewCommand("whoami").Execute()

	if err != nil || name == "" {
		return "user"
	}

	return name
}

// Clear clears the local terminal.
func Clear() {
	cmd := exec.Command("clear")
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}

// Capitalise upper-cases the first letter of a name for the greeting.
func Capitalise(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
