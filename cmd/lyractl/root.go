package main

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

func newRootCommand() *cobra.Command {
	var serverFlag string
	var tokenFlag string

	ctx := newCommandContext(&serverFlag, &tokenFlag)

	rootCmd := &cobra.Command{
		Use:           "lyractl",
		Short:         "Lyra assistant CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", defaultServer, "Lyra API base URL")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", os.Getenv("LYRA_TOKEN"), "Access token (defaults to $LYRA_TOKEN)")

	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newAskCommand(ctx))
	rootCmd.AddCommand(newInsightsCommand(ctx))
	rootCmd.AddCommand(newSummaryCommand(ctx))

	return rootCmd
}
