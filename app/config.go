package app

import (
	"github.com/spf13/cobra"

	"github.com/signalfire/auto-featured/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	configJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			redact(&cfg)

			dump := config.DumpConfig
			if configJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&cfg)
			if err != nil {
				return err
			}

			cmd.Println(out)

			return nil
		},
	}
)

// redact hides credentials from the printed configuration.
func redact(cfg *config.Config) {
	const hidden = "********"

	if cfg.DB.Password != "" {
		cfg.DB.Password = hidden
	}

	if cfg.Media.S3.SecretKey != "" {
		cfg.Media.S3.SecretKey = hidden
	}
}
