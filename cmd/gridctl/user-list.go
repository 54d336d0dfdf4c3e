package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output != "text" && output != "json" {
			return fmt.Errorf("unknown output format %q", output)
		}

		env, err := openAdminEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		users, err := env.stores.Users.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		if output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(users)
		}
		return writeUserTable(cmd.OutOrStdout(), users)
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func writeUserTable(w io.Writer, users []model.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tADMIN\tID\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", u.Username, u.IsAdmin, u.ID, u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	return tw.Flush()
}
