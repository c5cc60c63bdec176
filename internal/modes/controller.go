package modes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"wcli/internal/logger"
	"wcli/internal/profiles"
	"wcli/internal/ssh"
	"wcli/internal/translate"
)

// Executor relays one command line to the remote host.
type Executor interface {
	Execute(ctx context.Context, command string) (*ssh.CommandResult, error)
}

// Prompter asks the user a one-time question and returns the raw
// answer line.
type Prompter interface {
	ReadAnswer(label string) (string, error)
}

// Controller is the mode state machine. It decides per input line
// whether the line is a control command or payload, translates payload
// through the active mode's rule and relays it to the Executor. Every
// error encountered inside a mode is printed and swallowed; nothing
// here terminates the process.
type Controller struct {
	// Profiles, when set, remembers prompt answers per Host so the
	// next visit to a mode offers them as defaults.
	Profiles *profiles.Repository
	Host     string

	// Clear clears the local terminal. Optional.
	Clear func()

	executor   Executor
	prompter   Prompter
	out        io.Writer
	translator *translate.Service

	mode Mode
	git  *GitContext
	sql  *SQLContext
	test *TestContext
}

func NewController(executor Executor, prompter Prompter, out io.Writer, translator *translate.Service) *Controller {
	return &Controller{
		executor:   executor,
		prompter:   prompter,
		out:        out,
		translator: translator,
		mode:       Root,
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// HandleLine processes a single input line. The returned flag is true
// when the session should end (exit at Root).
func (c *Controller) HandleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)

	switch c.mode {
	case Shell:
		c.handleShell(ctx, line)
	case Git:
		c.handleGit(ctx, line)
	case Sql:
		c.handleSQL(ctx, line)
	case Test:
		c.handleTest(ctx, line)
	default:
		return c.handleRoot(ctx, line)
	}

	return false
}

func (c *Controller) handleRoot(ctx context.Context, line string) (quit bool) {
	switch line {
	case "":
	case "cmd":
		c.mode = Shell
		fmt.Fprintf(c.out, "Run 'help' for commands\n\n")
	case "git":
		c.enterGit()
	case "sql":
		c.enterSQL(ctx)
	case "test":
		c.enterTest(ctx)
	case "clear":
		c.clearTerminal()
	case "help":
		c.printRootHelp()
	case "exit":
		return true
	default:
		fmt.Fprintln(c.out, "invalid command, run 'help' for commands")
	}

	return false
}

func (c *Controller) handleShell(ctx context.Context, line string) {
	switch line {
	case "":
	case "exit":
		c.mode = Root
	case "clear":
		c.clearTerminal()
	case "help":
		c.printShellHelp()
	case "install":
		if pkg, ok := c.askRequired("Package", ""); ok {
			c.runAndPrint(ctx, c.translator.Install(pkg))
		}
	case "remove":
		if pkg, ok := c.askRequired("Package", ""); ok {
			c.runAndPrint(ctx, c.translator.Remove(pkg))
		}
	default:
		c.runAndPrint(ctx, c.translator.Shell(line))
	}
}

func (c *Controller) handleGit(ctx context.Context, line string) {
	switch line {
	case "":
	case "exit":
		c.git = nil
		c.mode = Root
	case "change":
		c.git = nil
		c.mode = Root
		c.enterGit()
	case "clear":
		c.clearTerminal()
	case "help":
		c.printGitHelp()
	default:
		c.runAndPrint(ctx, c.translator.Git(c.git.RepoPath, line))
	}
}

func (c *Controller) handleSQL(ctx context.Context, line string) {
	switch line {
	case "":
	case "exit":
		c.sql = nil
		c.mode = Root
	case "database":
		fmt.Fprintf(c.out, "In database: %s\n", c.sql.Database)
	case "change":
		c.sql = nil
		c.mode = Root
		c.enterSQL(ctx)
	case "clear":
		c.clearTerminal()
	case "help":
		c.printSQLHelp()
	default:
		c.runQuery(ctx, line)
	}
}

func (c *Controller) handleTest(ctx context.Context, line string) {
	switch line {
	case "":
	case "exit":
		c.test = nil
		c.mode = Root
	case "clear":
		c.clearTerminal()
	case "help":
		c.printTestHelp()
	default:
		// Payload is ignored in favor of the single fixed action.
		c.runTests(ctx)
	}
}

func (c *Controller) enterGit() {
	saved := c.loadProfile(Git)

	repoPath, ok := c.askRequired("Repo path", saved.RepoPath)

	if !ok {
		return
	}

	saved.RepoPath = repoPath
	c.saveProfile(saved)

	c.git = &GitContext{RepoPath: repoPath}
	c.mode = Git

	fmt.Fprintf(c.out, "Run 'help' for commands\n\n")
}

func (c *Controller) enterSQL(ctx context.Context) {
	start := time.Now()

	result, err := c.executor.Execute(ctx, c.translator.SQLProbe())

	if err != nil {
		fmt.Fprintf(c.out, "unable to connect to mariadb: %v\n", err)
		return
	}

	if result.ExitCode != 0 {
		fmt.Fprintf(c.out, "unable to connect to mariadb: %s\n", result.Stderr)
		return
	}

	latency := time.Since(start)

	fmt.Fprintf(c.out, "Connected to mariadb in %v\n\n", latency)

	saved := c.loadProfile(Sql)

	database, ok := c.askRequired("Database", saved.Database)

	if !ok {
		return
	}

	saved.Database = database
	c.saveProfile(saved)

	c.sql = &SQLContext{Database: database, ConnectLatency: latency}
	c.mode = Sql

	fmt.Fprintf(c.out, "Database: %s\nRun 'help' for commands\n\n", database)
}

func (c *Controller) enterTest(ctx context.Context) {
	saved := c.loadProfile(Test)

	repoPath, ok := c.askRequired("Repo path", saved.RepoPath)
	if !ok {
		return
	}

	venvName, ok := c.askRequired("venv name", saved.VenvName)
	if !ok {
		return
	}

	testsPath, ok := c.askRequired("Tests path", saved.TestsPath)
	if !ok {
		return
	}

	saved.RepoPath = repoPath
	saved.VenvName = venvName
	saved.TestsPath = testsPath
	c.saveProfile(saved)

	c.test = &TestContext{RepoPath: repoPath, VenvName: venvName, TestsPath: testsPath}
	c.mode = Test

	c.runTests(ctx)
}

func (c *Controller) runTests(ctx context.Context) {
	command := c.translator.Test(c.test.RepoPath, c.test.VenvName, c.test.TestsPath)

	start := time.Now()

	result, err := c.executor.Execute(ctx, command)

	elapsed := time.Since(start).Round(time.Second)

	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return
	}

	if result.ExitCode == 0 {
		fmt.Fprintf(c.out, "\nAll tests passed in %v\n", elapsed)
		if result.Stdout != "" {
			fmt.Fprintln(c.out, result.Stdout)
		}
	} else {
		fmt.Fprintf(c.out, "\nTests failed after %v\n", elapsed)
		if result.Stderr != "" {
			fmt.Fprintln(c.out, result.Stderr)
		}
	}
}

func (c *Controller) runQuery(ctx context.Context, query string) {
	command := c.translator.SQLQuery(c.sql.Database, query)

	if command == "" {
		return
	}

	result, err := c.executor.Execute(ctx, command)

	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return
	}

	if result.ExitCode != 0 {
		c.printFailure(result)
		return
	}

	if result.Stdout != "" {
		fmt.Fprintln(c.out, FormatTable(result.Stdout))
	}
}

// runAndPrint relays a translated command and prints the outcome. An
// empty command is a no-op.
func (c *Controller) runAndPrint(ctx context.Context, command string) {
	if command == "" {
		return
	}

	result, err := c.executor.Execute(ctx, command)

	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return
	}

	if result.ExitCode != 0 {
		c.printFailure(result)
		return
	}

	if result.Stdout != "" {
		fmt.Fprintln(c.out, result.Stdout)
	}
}

func (c *Controller) printFailure(result *ssh.CommandResult) {
	if result.Stderr != "" {
		fmt.Fprintln(c.out, result.Stderr)
	} else if result.Stdout != "" {
		fmt.Fprintln(c.out, result.Stdout)
	}
	fmt.Fprintf(c.out, "exit status %d\n", result.ExitCode)
}

// askRequired prompts until a non-empty answer arrives. An empty
// answer accepts the default when one exists. Returns ok=false when
// input ends.
func (c *Controller) askRequired(label string, defaultValue string) (string, bool) {
	display := label
	if defaultValue != "" {
		display = fmt.Sprintf("%s [%s]", label, defaultValue)
	}

	for {
		answer, err := c.prompter.ReadAnswer(display)

		if err != nil {
			return "", false
		}

		answer = strings.TrimSpace(answer)

		if answer != "" {
			return answer, true
		}

		if defaultValue != "" {
			return defaultValue, true
		}

		fmt.Fprintf(c.out, "%s is required\n", label)
	}
}

func (c *Controller) loadProfile(mode Mode) *profiles.ModeProfile {
	if c.Profiles == nil {
		return &profiles.ModeProfile{Host: c.Host, Mode: mode.String()}
	}

	saved, err := c.Profiles.Get(c.Host, mode.String())

	if err != nil {
		logger.Warn("failed to load %s profile: %v", mode, err)
	}

	if saved == nil {
		return &profiles.ModeProfile{Host: c.Host, Mode: mode.String()}
	}

	return saved
}

func (c *Controller) saveProfile(profile *profiles.ModeProfile) {
	if c.Profiles == nil {
		return
	}

	if err := c.Profiles.Save(profile); err != nil {
		logger.Warn("failed to save %s profile: %v", profile.Mode, err)
	}
}

func (c *Controller) clearTerminal() {
	if c.Clear != nil {
		c.Clear()
	}
}

func (c *Controller) printRootHelp() {
	fmt.Fprintln(c.out, "\nCOMMANDS")
	fmt.Fprintln(c.out, "'cmd'     -> run a Linux command")
	fmt.Fprintln(c.out, "'git'     -> run a git command in a repository")
	fmt.Fprintln(c.out, "'sql'     -> run a sql query")
	fmt.Fprintln(c.out, "'test'    -> run Python unit tests")
	fmt.Fprintln(c.out, "'clear'   -> clear the terminal")
	fmt.Fprintln(c.out, "'exit'    -> exit wcli")
}

func (c *Controller) printShellHelp() {
	fmt.Fprintln(c.out, "\nCOMMANDS")
	fmt.Fprintln(c.out, "'any'         -> run a Linux cmd, ensure syntax is correct")
	fmt.Fprintln(c.out, "'install'     -> install a package")
	fmt.Fprintln(c.out, "'remove'      -> uninstall a package")
	fmt.Fprintln(c.out, "'clear'       -> clear the terminal")
	fmt.Fprintln(c.out, "'exit'        -> exit cmd")
}

func (c *Controller) printGitHelp() {
	fmt.Fprintln(c.out, "\nCOMMANDS")
	fmt.Fprintln(c.out, "'any'     -> run a git command, ensure syntax is correct")
	fmt.Fprintln(c.out, "'change'  -> change git directory")
	fmt.Fprintln(c.out, "'clear'   -> clear the terminal")
	fmt.Fprintln(c.out, "'exit'    -> exit git")
}

func (c *Controller) printSQLHelp() {
	fmt.Fprintln(c.out, "\nCOMMANDS")
	fmt.Fprintln(c.out, "'any'        -> run a sql query, ensure syntax is correct")
	fmt.Fprintln(c.out, "'database'   -> show current database")
	fmt.Fprintln(c.out, "'change'     -> change database")
	fmt.Fprintln(c.out, "'clear'      -> clear the terminal")
	fmt.Fprintln(c.out, "'exit'       -> exit sql")
}

func (c *Controller) printTestHelp() {
	fmt.Fprintln(c.out, "\nCOMMANDS")
	fmt.Fprintln(c.out, "'any'     -> run the test suite again")
	fmt.Fprintln(c.out, "'clear'   -> clear the terminal")
	fmt.Fprintln(c.out, "'exit'    -> exit test")
}
