package main

import (
	"fmt"
	"os"

	"wcli/cmd/wcli/commands"
	"wcli/cmd/wcli/config"
	"wcli/internal/database"
	"wcli/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wcli",
	Short: "Interactive shell for running quick commands on an EC2 instance",
	Long: `wcli connects to a single EC2 instance over SSH and opens an
interactive shell with specialized sub-shells:

- cmd   run one-line Linux commands (sudo supported, yum install/remove helpers)
- git   run git commands inside a chosen repository
- sql   run SQL statements against the mariadb server on the instance
- test  run Python unit tests inside a virtual environment

Credentials are read from an .env file with three keys:

PASS='password'
EC2='ec2-user@ec2-xxxxxxxx.compute.amazonaws.com'
PEM='/home/user/your_key.pem'

Commands are relayed one line at a time over a single long-lived
connection; output and exit status stream back to the terminal.`,
	Version:       fmt.Sprintf("%s (commit: %s, date: %s); db path: %s; profile: %s", version.Version, version.Commit, version.Date, config.DatabasePath, config.Profile),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          commands.RunShell,
}

func main() {
	db, err := database.InitDB()

	if err != nil {
		rootCmd.PrintErrf("Failed to initialize database at %s: %v\n", config.Config.DatabasePath, err)
		db = nil
	}

	commands.RegisterCommands(rootCmd, db)

	exitCode := 0

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("%v\n", err)
		exitCode = 1
	}

	if db != nil {
		if err := database.CloseDB(db); err != nil {
			rootCmd.PrintErrf("Failed to close database: %v\n", err)
		}
	}

	os.Exit(exitCode)
}
