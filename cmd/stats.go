package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"ai-notebook.com/ai-notebook/internal/services"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print project and per-project task statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		overview, err := services.NewProjectService(a.projects, a.tasks, a.members, a.logger).Overview(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(overview)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
