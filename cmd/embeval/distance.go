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

	"github.com/spf13/cobra"
)

func newDistanceCmd() *cobra.Command {
	opts := &nearestOptions{}

	cmd := &cobra.Command{
		Use:   "distance <vectors>",
		Short: "Find the words closest to words read from stdin",
		Long: `Find the words closest to words read from stdin. A line with one word
lists its nearest neighbours, a line with two words prints their cosine
similarity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nearest, err := opts.open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				parts := strings.Fields(scanner.Text())

				switch len(parts) {
				case 0:
					continue
				case 1:
					results, err := nearest.Similarity(parts[0], opts.limit)
					if err != nil {
						fmt.Fprintln(errOut, err.Error())
						continue
					}

					for _, wordSimilarity := range results {
						fmt.Fprintln(out, wordSimilarity.Word, wordSimilarity.Similarity)
					}
				case 2:
					sim, err := nearest.Dot(parts[0], parts[1])
					if err != nil {
						fmt.Fprintln(errOut, err.Error())
						continue
					}

					fmt.Fprintln(out, sim)
				default:
					fmt.Fprintf(errOut, "Skipping line with more than two words: %s\n", scanner.Text())
				}
			}

			return scanner.Err()
		},
	}

	opts.register(cmd)

	return cmd
}
