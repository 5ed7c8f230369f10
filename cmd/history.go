package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	historyrender "github.com/summarizeai/sai-cli/internal/adapters/render/history"
	"github.com/summarizeai/sai-cli/internal/application"
	"github.com/summarizeai/sai-cli/internal/domain"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse, search and export your summary history",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryDeleteCmd(app),
		newHistoryExportCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *app) *cobra.Command {
	var page, pageSize int
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a page of your summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := make([]application.ControllerOption, 0, 2)
			if pageSize != 0 {
				if !domain.ValidPageSize(pageSize) {
					return domain.ErrInvalidPageSize
				}
				opts = append(opts, application.WithPageSize(pageSize))
			}
			if search != "" {
				opts = append(opts, application.WithSearch(search))
			}

			controller := app.newHistoryController(opts...)
			defer controller.Close()

			if err := controller.Refresh(cmd.Context()); err != nil {
				return err
			}
			if page > 1 {
				if err := controller.SetPage(cmd.Context(), page); err != nil {
					return err
				}
			}

			view := controller.View()
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
					Items []domain.Summary `json:"items"`
					Total int              `json:"total"`
					Page  int              `json:"page"`
				}{Items: view.Items, Total: view.Total, Page: view.Page})
			}

			output, err := app.historyRenderer(view, historyrender.RenderOptions{Now: time.Now()})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page (5, 10, 25 or 50)")
	cmd.Flags().StringVar(&search, "search", "", "filter summaries by text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")

	return cmd
}

func newHistoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a summary from your history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse summary id %q: %w", args[0], err)
			}

			controller := app.newHistoryController()
			defer controller.Close()

			if err := controller.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := controller.DeleteSummary(cmd.Context(), domain.SummaryID(id)); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted summary #%d.\n", id)
			return err
		},
	}
}

func newHistoryExportCmd(app *app) *cobra.Command {
	var search, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your history as a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := make([]application.ControllerOption, 0, 1)
			if search != "" {
				opts = append(opts, application.WithSearch(search))
			}

			controller := app.newHistoryController(opts...)
			defer controller.Close()

			out := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer func() { _ = file.Close() }()
				out = file
			}

			if err := controller.ExportHistory(cmd.Context(), out); err != nil {
				return err
			}
			if outPath != "" {
				_, err := fmt.Fprintf(cmd.ErrOrStderr(), "Exported history to %s.\n", outPath)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "export only summaries matching this text")
	cmd.Flags().StringVar(&outPath, "out", "", "write to a file instead of stdout")

	return cmd
}
