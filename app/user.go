package app

import (
	"github.com/spf13/cobra"

	"github.com/signalfire/auto-featured/internal/auth"
)

func init() { //nolint: gochecknoinits
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "E-mail address")
	userCreateCmd.Flags().StringVar(&userRole, "role", "author", "Role name (admin or author)")
	addSiteFlag(userCreateCmd)

	userCmd.AddCommand(userCreateCmd, userPasswordCmd, userDisableCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	userEmail string
	userRole  string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage the local accounts of the admin UI and API",
	}

	userCreateCmd = &cobra.Command{
		Use:   "create <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2), //nolint: mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			role, err := auth.NewService(env.DB).GetRole(userRole)
			if err != nil {
				return err
			}

			user, err := auth.NewLocalProvider(env.DB).CreateUser(args[0], userEmail, args[1], role.ID, siteID)
			if err != nil {
				return err
			}

			cmd.Printf("user %s created (id %d, role %s)\n", user.Username, user.ID, role.Name)

			return nil
		},
	}

	userPasswordCmd = &cobra.Command{
		Use:   "passwd <username> <password>",
		Short: "Set the password of an account",
		Args:  cobra.ExactArgs(2), //nolint: mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			local := auth.NewLocalProvider(env.DB)

			user, err := local.GetUserByUsername(args[0])
			if err != nil {
				return err
			}

			return local.ResetPassword(user.ID, args[1])
		},
	}

	userDisableCmd = &cobra.Command{
		Use:   "disable <username>",
		Short: "Disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}

			defer func() { _ = env.Close() }()

			local := auth.NewLocalProvider(env.DB)

			user, err := local.GetUserByUsername(args[0])
			if err != nil {
				return err
			}

			return local.DeactivateUser(user.ID)
		},
	}
)
