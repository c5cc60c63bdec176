package commands

import (
	"wcli/internal/profiles"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var profilesRepository *profiles.Repository

// RegisterCommands wires the database-backed services and attaches the
// subcommands. A nil db degrades to plain prompts without remembered
// defaults.
func RegisterCommands(rootCmd *cobra.Command, db *gorm.DB) {
	if db != nil {
		profilesRepository = profiles.NewRepository(db)
	}

	rootCmd.AddCommand(ProfilesCmd)

	rootCmd.Flags().StringVar(&EnvFilePath, "env", EnvFilePath, "Path to the .env file holding PASS, EC2 and PEM")
}
