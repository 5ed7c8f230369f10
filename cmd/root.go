package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sai",
		Short:         "SummarizeAI CLI (sai): summarize texts and browse your history",
		Long:          "sai talks to the SummarizeAI backend: sign in, summarize texts, page and search through your summary history, and export it, all from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newSummarizeCmd(app),
		newHistoryCmd(app),
		newHealthCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
