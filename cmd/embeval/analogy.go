// Copyright 2015 Daniël de Kok
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/danieldk/embeval"
	"github.com/spf13/cobra"
)

type nearestOptions struct {
	backend string
	format  string
	limit   int
}

func (o *nearestOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.backend, "backend", embeval.DefaultBackend, fmt.Sprintf("Compute backend %v", embeval.Backends()))
	flags.StringVar(&o.format, "format", embeval.FormatAuto, "Embedding format: bin, text or auto")
	flags.IntVarP(&o.limit, "limit", "n", 10, "Number of results per query")
}

func (o *nearestOptions) open(path string) (*embeval.Nearest, error) {
	backend, err := embeval.NewBackend(o.backend)
	if err != nil {
		return nil, err
	}

	embeds, err := embeval.ReadEmbeddingsFile(path, o.format, true)
	if err != nil {
		return nil, fmt.Errorf("cannot read vectors: %w", err)
	}

	return embeval.NewNearest(embeds, backend), nil
}

func newAnalogyCmd() *cobra.Command {
	opts := &nearestOptions{}

	cmd := &cobra.Command{
		Use:   "analogy <vectors>",
		Short: "Answer analogy queries read from stdin",
		Long: `Answer analogy queries read from stdin. Every line holds three words
a b c and is answered with the words closest to b - a + c.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nearest, err := opts.open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Split(bufio.ScanLines)
			for scanner.Scan() {
				line := scanner.Text()

				parts := strings.Fields(line)
				if len(parts) != 3 {
					fmt.Fprintf(errOut, "Skipping line that does not have three words: %s\n", line)
					continue
				}

				results, err := nearest.Analogy(parts[0], parts[1], parts[2], opts.limit)
				if err != nil {
					fmt.Fprintln(errOut, err.Error())
					continue
				}

				for _, wordSimilarity := range results {
					fmt.Fprintln(out, wordSimilarity.Word, wordSimilarity.Similarity)
				}
			}

			return scanner.Err()
		},
	}

	opts.register(cmd)

	return cmd
}
