package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(app *app) *cobra.Command {
	var wait bool
	var waitFor time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if wait {
				if err := app.health.AwaitReady(cmd.Context(), waitFor); err != nil {
					return err
				}
			}

			status, err := app.health.Check(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", status.Status, status.Service, status.Version)
			return err
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the backend is ready before checking")
	cmd.Flags().DurationVar(&waitFor, "wait-for", 30*time.Second, "maximum time to wait with --wait")

	return cmd
}
