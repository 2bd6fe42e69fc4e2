// Package app implements the main application commands.
package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/daemon"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/logger"
)

var (
	configPath string // Path to the configuration folder
	siteID     uint64 // Site a maintenance command works on

	rootCmd = &cobra.Command{
		Use:   "auto-featured",
		Short: "auto-featured assigns featured images to posts on save",
		Long: `auto-featured is a small content service that assigns a featured image
to every saved post that has none, taken from the first image in its content
or from a configured fallback image.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Path to the configuration folder")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// addSiteFlag registers the --site flag on a maintenance command.
func addSiteFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&siteID, "site", models.DefaultSiteID, "Site id")
}

// readConfig reads the configuration and initializes the logger.
func readConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// openEnv reads the configuration and opens the services a maintenance command needs.
func openEnv(ctx context.Context) (*daemon.Env, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	return daemon.Open(ctx, cfg)
}
