package app

import (
	"sort"

	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	addSiteFlag(backfillCmd)

	rootCmd.AddCommand(backfillCmd)
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Assign featured images to the existing posts of a site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}

		defer func() { _ = env.Close() }()

		counts, err := env.Assigner.Backfill(cmd.Context(), siteID)
		if err != nil {
			return err
		}

		outcomes := make([]string, 0, len(counts))
		for outcome := range counts {
			outcomes = append(outcomes, outcome)
		}

		sort.Strings(outcomes)

		for _, outcome := range outcomes {
			cmd.Printf("%-10s %d\n", outcome, counts[outcome])
		}

		return nil
	},
}
