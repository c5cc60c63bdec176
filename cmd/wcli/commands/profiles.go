package commands

import (
	"strings"

	"wcli/internal/modes"

	"github.com/spf13/cobra"
)

var ProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage remembered mode prompts",
	Long:  `List or clear the prompt answers wcli remembers per host (repository path, database name, venv name, tests path). Remembered answers are offered as defaults the next time a mode is entered.`,
}

var ListProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered prompt answers",
	Run: func(cmd *cobra.Command, _ []string) {
		if profilesRepository == nil {
			cmd.PrintErrln("profile store is unavailable")
			return
		}

		all, err := profilesRepository.GetAll()

		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			return
		}

		if len(all) == 0 {
			cmd.Println("no profiles saved yet")
			return
		}

		rows := []string{"HOST\tMODE\tREPO\tDATABASE\tVENV\tTESTS"}

		for _, profile := range all {
			rows = append(rows, strings.Join([]string{
				profile.Host,
				profile.Mode,
				profile.RepoPath,
				profile.Database,
				profile.VenvName,
				profile.TestsPath,
			}, "\t"))
		}

		cmd.Println(modes.FormatTable(strings.Join(rows, "\n")))
	},
}

var ClearProfilesCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all remembered prompt answers",
	Run: func(cmd *cobra.Command, _ []string) {
		if profilesRepository == nil {
			cmd.PrintErrln("profile store is unavailable")
			return
		}

		if err := profilesRepository.DeleteAll(); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			return
		}

		cmd.Println("profiles cleared")
	},
}

func init() {
	ProfilesCmd.AddCommand(ListProfilesCmd)
	ProfilesCmd.AddCommand(ClearProfilesCmd)
}
