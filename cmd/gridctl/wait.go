package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the GRiD server to be ready",
	Long: `Wait for the GRiD server to be ready by polling the health endpoint.

The server is ready once /api/health reports the database reachable.

Example:
  gridctl wait
  gridctl wait --port 3000 --retries 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		url := fmt.Sprintf("http://%s:%d/api/health", host, port)
		fmt.Fprintln(cmd.ErrOrStderr(), "Waiting for GRiD to be ready...")
		if err := waitForServer(cmd.Context(), url, retries, time.Second); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "GRiD server is ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("host", "localhost", "Server host to check")
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(ctx context.Context, url string, retries int, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client := &http.Client{Timeout: 2 * time.Second}

	for i := 0; i < retries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("server is not ready after %d attempts", retries)
}
