package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/summarizeai/sai-cli/internal/domain"
	"github.com/summarizeai/sai-cli/internal/ports"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change local preferences",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := app.preferences.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "page-size: %d\n", prefs.PageSize)
			baseURL := prefs.BaseURL
			if baseURL == "" {
				baseURL = app.gateway.BaseURL() + " (default)"
			}
			_, err = fmt.Fprintf(out, "base-url: %s\n", baseURL)
			return err
		},
	}
}

func newConfigSetCmd(app *app) *cobra.Command {
	var pageSize int
	var baseURL string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist preferences for future runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := app.preferences.Load(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("page-size") {
				if !domain.ValidPageSize(pageSize) {
					return domain.ErrInvalidPageSize
				}
				prefs.PageSize = pageSize
			}
			if cmd.Flags().Changed("base-url") {
				prefs.BaseURL = baseURL
			}

			if err := app.preferences.Save(cmd.Context(), ports.Preferences{
				PageSize: prefs.PageSize,
				BaseURL:  prefs.BaseURL,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Preferences saved.")
			return err
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per history page (5, 10, 25 or 50)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "backend base URL override")

	return cmd
}
