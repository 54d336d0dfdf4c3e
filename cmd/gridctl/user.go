package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Manage user accounts directly in the database.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return requireSubcommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}

// findUser resolves a username to a user.
func findUser(ctx context.Context, users store.UserStore, username string) (*model.User, error) {
	user, err := users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user not found: %s", username)
	}
	return user, err
}
