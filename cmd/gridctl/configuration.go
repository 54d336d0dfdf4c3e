package main

import (
	"github.com/spf13/cobra"
)

// configurationCmd represents the configuration command
var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Inspect GRiD configuration",
	Long:  `Inspect GRiD configuration settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return requireSubcommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}
