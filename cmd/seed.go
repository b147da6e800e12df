package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write sample data into empty collections",
	Long:  "Writes a sample project, its tasks and the acting user as owner. Collections that already exist are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.seed(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "projects: %s\n", seedOutcome(result.Projects))
		fmt.Fprintf(out, "tasks:    %s\n", seedOutcome(result.Tasks))
		fmt.Fprintf(out, "members:  %s\n", seedOutcome(result.Members))
		return nil
	},
}

func seedOutcome(wrote bool) string {
	if wrote {
		return "seeded"
	}
	return "already present"
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
