package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/pkg/config"
)

func newSummarizeCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a JSON message payload locally without storing it",
		Long: `Reads one message payload as JSON from --file or stdin and prints the
resulting record. Nothing is written to the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var payload domain.MessagePayload
			if err := json.NewDecoder(in).Decode(&payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}

			cfg := config.Load()
			if err := cfg.LoadPlatforms(); err != nil {
				return err
			}
			record, err := newPipeline(cfg).Summarize(payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the payload from a file instead of stdin")
	return cmd
}

func newCleanCommand() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "clean [text]",
		Short: "Print the normalized form of a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}

			cfg := config.Load()
			if err := cfg.LoadPlatforms(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), newPipeline(cfg).Clean(platform, text))
			return err
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Source platform, e.g. whatsapp or email")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
