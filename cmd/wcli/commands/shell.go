package commands

import (
	"wcli/cmd/wcli/config"
	"wcli/internal/credentials"
	"wcli/internal/repl"
	"wcli/internal/ssh"
	"wcli/internal/terminal"
	"wcli/internal/translate"

	"github.com/spf13/cobra"
)

var EnvFilePath = config.Config.EnvFilePath

// RunShell is the root command: load credentials, set up the connector
// and hand control to the interactive loop. Any returned error is a
// fatal configuration or initial-connection failure; the process exits
// non-zero without entering the loop.
func RunShell(cmd *cobra.Command, _ []string) error {
	creds, err := credentials.Load(EnvFilePath)

	if err != nil {
		return err
	}

	connector := ssh.NewService(creds)
	connector.ConnectTimeout = config.Config.ConnectTimeout
	connector.ExecTimeout = config.Config.ExecTimeout
	connector.PassphrasePrompt = func() (string, error) {
		return readPasswordSecurely("Enter PEM passphrase: ", cmd.OutOrStdout())
	}

	defer connector.Close()

	user := terminal.Capitalise(terminal.Whoami())

	loop := repl.New(connector, translate.NewService(creds.Password), cmd.InOrStdin(), cmd.OutOrStdout(), user)

	controller := loop.Controller()
	controller.Profiles = profilesRepository
	controller.Host = creds.Address
	controller.Clear = terminal.Clear

	return loop.Run()
}
