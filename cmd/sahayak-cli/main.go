package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

const (
	defaultServerURL = "http://localhost:8190"
	serverURLEnv     = "SAHAYAK_SERVER_URL"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sahayak-cli",
	Short: "Jal Shakti Sahayak CLI - talk to the grievance desk from a terminal",
	Long: `sahayak-cli is the command-line client for the Jal Shakti Sahayak grievance desk.

It can hold a citizen conversation, look up grievances, show the official
dashboard, and prepare seed files for the ledger.

Examples:
  sahayak-cli chat
  sahayak-cli status JSS-5821
  sahayak-cli grievances --json
  sahayak-cli dashboard
  sahayak-cli seed schema > seed.schema.json`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(grievancesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.PersistentFlags().String("server", "", "Server base URL (default $"+serverURLEnv+" or "+defaultServerURL+")")
	rootCmd.PersistentFlags().Duration("timeout", 60*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Bool("json", false, "Print raw JSON responses")
}

// newClientFromFlags resolves --server, then the environment, then the default.
func newClientFromFlags(cmd *cobra.Command) *apiClient {
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		server = os.Getenv(serverURLEnv)
	}
	if server == "" {
		server = defaultServerURL
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return newAPIClient(server, timeout)
}
