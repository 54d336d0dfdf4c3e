package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// userDeleteCmd represents the user delete command
var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user and their grants",
	Args:  cobra.ExactArgs(1),
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
		if err := env.stores.Users.DeleteUser(cmd.Context(), user.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted user '%s'\n", user.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userDeleteCmd)
}
