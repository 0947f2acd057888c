package main

import (
	"fmt"

	"github.com/danieldk/embeval"
	"github.com/danieldk/embeval/cmd/common"
	"github.com/danieldk/embeval/internal/store"
	"github.com/spf13/cobra"
)

type analogiesOptions struct {
	configPath    string
	lower         bool
	verbose       bool
	rowLimit      int
	backend       string
	format        string
	noMemoryCheck bool
	json          bool
	db            string
}

func newAnalogiesCmd() *cobra.Command {
	opts := &analogiesOptions{}

	cmd := &cobra.Command{
		Use:   "analogies <vectors> <questions>",
		Short: "Score embeddings on an analogy question file",
		Long: `Score embeddings on an analogy question file.

Every question "a b c d" is answered by the word closest to a - b + d,
excluding a, b and d. Questions with words that are not in the
vocabulary are discarded.

Examples:
  embeval analogies vectors.bin questions-words.txt
  embeval analogies --lower=false --row-limit 200 vectors.txt questions-words.txt
  embeval analogies --json --db history.db vectors.bin questions-words.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalogies(cmd, opts, args[0], args[1])
		},
	}

	defaults := embeval.DefaultConfig()

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&opts.lower, "lower", defaults.Lower, "Lowercase questions before lookup")
	flags.BoolVarP(&opts.verbose, "verbose", "v", defaults.Verbose, "Log progress and a summary")
	flags.IntVar(&opts.rowLimit, "row-limit", defaults.RowLimit, "Maximum number of queries scored at once")
	flags.StringVar(&opts.backend, "backend", defaults.Backend, fmt.Sprintf("Compute backend %v", embeval.Backends()))
	flags.StringVar(&opts.format, "format", defaults.Format, "Embedding format: bin, text or auto")
	flags.BoolVar(&opts.noMemoryCheck, "no-memory-check", false, "Do not check available memory before scoring")
	flags.BoolVar(&opts.json, "json", false, "Output as JSON")
	flags.StringVar(&opts.db, "db", "", "Record the report in this history database")

	return cmd
}

func (o *analogiesOptions) config(cmd *cobra.Command) (embeval.Config, error) {
	cfg := embeval.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = embeval.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("lower") {
		cfg.Lower = o.lower
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if flags.Changed("row-limit") {
		cfg.RowLimit = o.rowLimit
	}
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if o.noMemoryCheck {
		cfg.CheckMemory = false
	}

	cfg.Logger = common.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	return cfg, cfg.Validate()
}

func runAnalogies(cmd *cobra.Command, opts *analogiesOptions, vectorsPath, questionsPath string) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	evaluator, err := embeval.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	embeds, err := embeval.ReadEmbeddingsFile(vectorsPath, cfg.Format, false)
	if err != nil {
		return fmt.Errorf("cannot read vectors: %w", err)
	}

	report, err := evaluator.EvaluateFile(cmd.Context(), embeds, questionsPath)
	if err != nil {
		return err
	}

	if opts.db != "" {
		if err := saveReport(cmd, opts.db, report, vectorsPath, questionsPath); err != nil {
			return err
		}
	}

	if opts.json {
		return report.WriteJSON(cmd.OutOrStdout())
	}
	return report.WriteText(cmd.OutOrStdout())
}

func saveReport(cmd *cobra.Command, path string, report *embeval.Report, vectorsPath, questionsPath string) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(cmd.Context(), report, vectorsPath, questionsPath); err != nil {
		return fmt.Errorf("cannot record report: %w", err)
	}

	return nil
}
