package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	summarydto "summaryhub-backend/internal/summary/dto"
)

func newClient(opts *options) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(opts.serverURL, "/")).
		SetTimeout(opts.timeout).
		SetHeader("Accept", "application/json")
}

func newClassifyCommand(opts *options) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify a message with a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out summarydto.ClassifyResponse
			resp, err := newClient(opts).R().
				SetContext(cmd.Context()).
				SetBody(summarydto.ClassifyRequest{Platform: platform, MessageText: strings.Join(args, " ")}).
				SetResult(&out).
				Post("/classify")
			if err != nil {
				return fmt.Errorf("classify request: %w", err)
			}
			if resp.IsError() {
				return fmt.Errorf("classify failed: %s", errorMessage(resp))
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Source platform")
	return cmd
}

func newFetchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <summary_id>",
		Short: "Fetch a stored record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient(opts).R().
				SetContext(cmd.Context()).
				SetPathParam("id", args[0]).
				Get("/history/{id}")
			if err != nil {
				return fmt.Errorf("fetch request: %w", err)
			}
			if resp.StatusCode() == http.StatusNotFound {
				return fmt.Errorf("summary %s not found", args[0])
			}
			if resp.IsError() {
				return fmt.Errorf("fetch failed: %s", errorMessage(resp))
			}

			var record json.RawMessage = resp.Body()
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

// errorMessage pulls the "error" field out of an API error body
func errorMessage(resp *resty.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status()
}
