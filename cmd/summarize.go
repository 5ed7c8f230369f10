package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/summarizeai/sai-cli/internal/application"
)

func newSummarizeCmd(app *app) *cobra.Command {
	var text string
	var plain bool

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a text and save it to your history",
		Long:  "Summarize a text via --text or stdin. Successful summaries are saved server-side; when the backend is degraded the summary is shown but not saved.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := text
			if input == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				input = string(data)
			}

			controller := app.newHistoryController()
			defer controller.Close()

			var result application.CreateResult
			create := func(ctx context.Context) error {
				var err error
				result, err = controller.CreateSummary(ctx, input)
				return err
			}

			if plain {
				if err := create(cmd.Context()); err != nil {
					return err
				}
			} else if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Summarizing...", create); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, strings.TrimSpace(result.Summary.SummaryText))
			if result.Ephemeral {
				notice := result.Message
				if notice == "" {
					notice = "Backend degraded: this summary was not saved to your history."
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), notice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text to summarize (reads stdin when omitted)")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable the progress spinner")

	return cmd
}
