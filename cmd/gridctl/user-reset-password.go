package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Set a new password for a user",
	Long: `Set a new password for a user. Tokens issued before the reset stay
valid until they expire.

Example:
  gridctl user reset-password root`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openAdminEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		user, err := findUser(cmd.Context(), env.stores.Users, args[0])
		if err != nil {
			return err
		}

		plaintext, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}
		if err := model.ValidatePassword(plaintext); err != nil {
			return err
		}
		digest, err := env.hasher.Hash(plaintext)
		if err != nil {
			return err
		}
		if err := env.stores.Users.UpdatePasswordHash(cmd.Context(), user.ID, digest); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Password reset for '%s'\n", user.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}
