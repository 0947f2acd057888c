package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/danieldk/embeval/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluation runs",
		Long: `List evaluation runs recorded with "embeval analogies --db".

With --run, the category scores of a single run are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if runID != "" {
				cats, err := s.Categories(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(cats) == 0 {
					return fmt.Errorf("no run with id %s", runID)
				}

				fmt.Fprintln(tw, "CATEGORY\tFOUND\tNOT FOUND\tCORRECT\tACCURACY")
				for _, cat := range cats {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4f\n", cat.Name, cat.Found, cat.NotFound, cat.Correct, cat.Accuracy)
				}
				return tw.Flush()
			}

			runs, err := s.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Fprintln(tw, "RUN\tDATE\tVECTORS\tBACKEND\tFOUND\tACCURACY\tTIME")
			for _, run := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.4f\t%s\n",
					run.ID, run.CreatedAt.Local().Format(time.DateTime), run.Vectors, run.Backend,
					run.TotalFound, run.TotalAccuracy, run.Elapsed.Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dbPath, "db", store.DefaultPath, "History database")
	flags.IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	flags.StringVar(&runID, "run", "", "Show the categories of this run")

	return cmd
}
