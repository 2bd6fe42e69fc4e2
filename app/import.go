package app

import (
	"github.com/spf13/cobra"

	"github.com/signalfire/auto-featured/internal/feedimport"
)

func init() { //nolint: gochecknoinits
	addSiteFlag(importCmd)
	importCmd.Flags().StringVar(&importType, "type", "", "Content type of the imported items (default from config, else post)")

	rootCmd.AddCommand(importCmd)
}

var (
	importType string

	importCmd = &cobra.Command{
		Use:   "import <feed-url>",
		Short: "Import the items of an RSS or Atom feed as posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			importCfg := env.Cfg.Import
			if importType != "" {
				importCfg.PostType = importType
			}

			importer := feedimport.New(nil, env.DB, env.Content, importCfg)

			result, err := importer.Import(cmd.Context(), siteID, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%s: %d imported, %d skipped\n", result.Title, result.Imported, result.Skipped)

			return nil
		},
	}
)
