package app

import (
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	addSiteFlag(activateCmd)
	addSiteFlag(deactivateCmd)
	addSiteFlag(uninstallCmd)

	rootCmd.AddCommand(activateCmd, deactivateCmd, uninstallCmd)
}

var (
	activateCmd = &cobra.Command{
		Use:   "activate",
		Short: "Seed the default auto featured settings of a site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			created, err := env.Lifecycle.Activate(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			if created {
				cmd.Printf("site %d: default settings created\n", siteID)
			} else {
				cmd.Printf("site %d: settings already present, left unchanged\n", siteID)
			}

			return nil
		},
	}

	deactivateCmd = &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate auto featured images (settings are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			env.Lifecycle.Deactivate(cmd.Context(), siteID)

			return nil
		},
	}

	uninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the auto featured settings of every site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			if err = env.Lifecycle.Uninstall(cmd.Context(), siteID); err != nil {
				return err
			}

			cmd.Println("auto featured settings removed")

			return nil
		},
	}
)
