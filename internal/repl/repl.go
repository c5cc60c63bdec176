package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"wcli/internal/modes"
	"wcli/internal/translate"
	"wcli/version"
)

const logo = `
                 _  _
                | |(_)
 __      __ ___ | | _   %s
 \ \ /\ / // __|| || |  %s
  \ V  V /| (__ | || |
   \_/\_/  \___||_||_|  %s

`

// Loop reads a line, dispatches it to the mode controller, prints the
// result and repeats until exit or end of input. Strictly sequential:
// it blocks on input, then on the relayed command, then on output.
type Loop struct {
	controller *modes.Controller
	executor   modes.Executor
	scanner    *bufio.Scanner
	out        io.Writer
	user       string
}

func New(executor modes.Executor, translator *translate.Service, in io.Reader, out io.Writer, user string) *Loop {
	loop := &Loop{
		executor: executor,
		scanner:  bufio.NewScanner(in),
		out:      out,
		user:     user,
	}

	// The loop doubles as the controller's prompter: mode questions
	// are answered from the same input stream as commands.
	loop.controller = modes.NewController(executor, loop, out, translator)

	return loop
}

// Controller exposes the mode controller for wiring profiles and the
// terminal clear hook.
func (l *Loop) Controller() *modes.Controller {
	return l.controller
}

// ReadAnswer makes the Loop the controller's prompter: a one-time
// question answered from the same input stream as commands.
func (l *Loop) ReadAnswer(label string) (string, error) {
	fmt.Fprintf(l.out, "%s: ", label)

	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return l.scanner.Text(), nil
}

// Run prints the banner, probes the connection and enters the loop.
// The returned error is non-nil only for the fatal initial-connection
// case; a clean exit or end of input returns nil.
func (l *Loop) Run() error {
	fmt.Fprintf(l.out, logo, "WCLI 2025", "Version "+version.Version, version.Website)
	fmt.Fprintf(l.out, "Welcome to WCLI %s! Run 'help' for commands\n\n", l.user)

	start := time.Now()

	if _, err := l.executor.Execute(context.Background(), "echo test"); err != nil {
		return fmt.Errorf("unable to connect to EC2: %w", err)
	}

	fmt.Fprintf(l.out, "Connected to EC2 on %s in %v\n\n",
		time.Now().Format("Mon Jan 2 at 15:04:05"), time.Since(start).Round(time.Millisecond))

	for {
		l.printPrompt()

		if !l.scanner.Scan() {
			// End of input is a clean exit.
			fmt.Fprintln(l.out)
			return nil
		}

		// Ctrl-C during a pending command cancels the local wait
		// only; the remote process may keep running.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

		quit := l.controller.HandleLine(ctx, l.scanner.Text())

		stop()

		if quit {
			return nil
		}
	}
}

func (l *Loop) printPrompt() {
	if l.controller.Mode() == modes.Root {
		fmt.Fprintf(l.out, "[%s@wcli ~]$ ", l.user)
		return
	}

	fmt.Fprintf(l.out, ">>> ")
}
