package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "embeval",
		Short: "Evaluate word embeddings",
		Long: `embeval evaluates word embeddings on analogy questions and answers
nearest neighbour queries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalogiesCmd(),
		newAnalogyCmd(),
		newDistanceCmd(),
		newBin2TextCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}
