package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/app"
	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Inspect or perform first-run setup",
	Long:  `Inspect or perform first-run setup, which creates the first admin user.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return requireSubcommand(cmd)
	},
}

var setupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the first admin has been created",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, closeFn, err := openGate()
		if err != nil {
			return err
		}
		defer closeFn()

		status, err := gate.Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

var setupInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the first admin user",
	Long: `Create the first admin user and print a token for it.

This only succeeds once; afterwards create users through the API or with
'gridctl user create'. The password is prompted for, or read from stdin
when stdin is not a terminal.

Example:
  gridctl setup init --username root
  echo "$ROOT_PASSWORD" | gridctl setup init --username root`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")

		gate, closeFn, err := openGate()
		if err != nil {
			return err
		}
		defer closeFn()

		plaintext, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}

		result, err := gate.Bootstrap(cmd.Context(), username, plaintext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Created admin user '%s' (%s)\n", result.User.Username, result.User.ID)
		fmt.Fprintln(cmd.OutOrStdout(), result.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.AddCommand(setupStatusCmd)
	setupCmd.AddCommand(setupInitCmd)

	setupInitCmd.Flags().StringP("username", "u", "", "admin username")
	_ = setupInitCmd.MarkFlagRequired("username")
}

func openGate() (*bootstrap.Gate, func(), error) {
	env, err := openAdminEnv()
	if err != nil {
		return nil, nil, err
	}
	tokens, err := app.NewTokens(env.cfg)
	if err != nil {
		env.Close()
		return nil, nil, err
	}
	return bootstrap.NewGate(env.stores.Users, env.hasher, tokens, cliLogger()), env.Close, nil
}
