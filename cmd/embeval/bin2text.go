package main

import (
	"bufio"
	"os"

	"github.com/danieldk/embeval"
	"github.com/spf13/cobra"
)

func newBin2TextCmd() *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "bin2text <vectors.bin>",
		Short: "Convert binary word2vec vectors to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			embeds, err := embeval.ReadWord2VecBinary(bufio.NewReader(f), normalize)
			if err != nil {
				return err
			}

			return embeval.WriteText(cmd.OutOrStdout(), embeds)
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize vectors to unit length")

	return cmd
}
