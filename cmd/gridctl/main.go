package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gridctl",
	Short: "Run and administer the GRiD inventory service",
	Long: `gridctl runs the GRiD inventory API and manages its database,
users and configuration.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
