// Package cli holds the summaryhub command tree
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8080"

type options struct {
	serverURL string
	timeout   time.Duration
}

// NewRootCommand builds the command tree. Running it without a subcommand serves the API.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "summaryhub",
		Short: "Decision-hub message summarizer",
		Long: `summaryhub turns raw chat, email and social messages into short
decision-hub records: a one-line summary plus type, intent, urgency,
people and a resolved date-time.

Examples:
  summaryhub serve                          # run the HTTP API
  echo '{"message_text":"call Alex at 3pm"}' | summaryhub summarize
  summaryhub classify --platform slack "any update on the deck?"
  summaryhub fetch s_0123456789ab           # read a stored record`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.serverURL, "server", "s", envOr("SUMMARYHUB_URL", defaultServerURL), "API base URL for remote commands")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout for remote commands")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newClassifyCommand(opts))
	rootCmd.AddCommand(newFetchCommand(opts))

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
