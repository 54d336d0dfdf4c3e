package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Long: `Create a user. The password is prompted for, or read from stdin
when stdin is not a terminal.

This does not perform first-run setup; use 'gridctl setup init' for the
first admin.

Example:
  gridctl user create alice
  gridctl user create --admin bob`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		admin, _ := cmd.Flags().GetBool("admin")
		if err := model.ValidateUsername(username); err != nil {
			return err
		}

		env, err := openAdminEnv()
		if err != nil {
			return err
		}
		defer env.Close()

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

		user := &model.User{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: digest,
			IsAdmin:      admin,
		}
		if err := env.stores.Users.CreateUser(cmd.Context(), user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("user '%s' already exists", username)
			}
			if errors.Is(err, store.ErrNotInitialized) {
				return errors.New("no admin exists yet; run 'gridctl setup init' first")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), user.ID)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().Bool("admin", false, "grant full administrative rights")
}
