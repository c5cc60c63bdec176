package commands

import (
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"
)

// readPasswordSecurely reads a secret from the terminal without
// echoing it.
func readPasswordSecurely(prompt string, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s", prompt)

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintf(out, "\n")

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}
