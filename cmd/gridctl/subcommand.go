package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// requireSubcommand prints help for a parent command invoked on its own.
func requireSubcommand(cmd *cobra.Command) error {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	_ = cmd.Help()
	return fmt.Errorf("command '%s' requires a subcommand (%s)", cmd.Name(), strings.Join(names, ", "))
}
