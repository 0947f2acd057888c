package embeval

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Evaluator runs analogy evaluations.
type Evaluator struct {
	cfg     Config
	backend Backend
	logger  *slog.Logger
}

// NewEvaluator creates an evaluator with the given configuration.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := NewBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		cfg:     cfg,
		backend: backend,
		logger:  cfg.logger(),
	}, nil
}

// EvaluateFile evaluates embeds on the question file at path.
func (e *Evaluator) EvaluateFile(ctx context.Context, embeds *Embeddings, path string) (*Report, error) {
	questions, err := ReadQuestionsFile(path, NewLookup(embeds, e.cfg.Lower), e.cfg.Lower)
	if err != nil {
		return nil, err
	}

	return e.Evaluate(ctx, embeds, questions)
}

// Evaluate scores all categories of questions, which must have been
// resolved against embeds. The embeddings are normalized first if needed.
func (e *Evaluator) Evaluate(ctx context.Context, embeds *Embeddings, questions *Questions) (*Report, error) {
	if !embeds.Normalized() {
		if zero := embeds.Normalize(); zero > 0 {
			e.logger.Warn("embeddings with zero length were set to zero vectors",
				slog.Int("count", zero))
		}
	}

	found, notFound := questions.Found(), questions.NotFound()
	e.progress("done scanning",
		slog.Int("discarded", notFound),
		slog.Int("total", found+notFound),
		slog.Float64("discarded_percent", 100*ratio(notFound, found+notFound)))

	scorer := &Scorer{
		Backend:  e.backend,
		RowLimit: e.cfg.RowLimit,
		Logger:   e.logger,
	}
	if e.cfg.CheckMemory {
		scorer.Memory = SystemMemory{}
	}

	totalBlocks := 0
	for _, cat := range questions.Categories {
		totalBlocks += scorer.NumBlocks(len(cat.Tuples))
	}

	m := embeds.Matrix()
	agg := NewAggregator()
	done := 0
	start := time.Now()

	for _, cat := range questions.Categories {
		agg.AddCategory(cat.Name, cat.Found, cat.NotFound)

		catStart := time.Now()
		err := scorer.ScoreCategory(ctx, m, cat, func(result BlockResult) error {
			agg.AddBlock(result)
			done++
			e.progress("finished batch",
				slog.String("category", cat.Name),
				slog.Int("batch", done),
				slog.Int("total", totalBlocks),
				slog.Float64("seconds", time.Since(catStart).Seconds()))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	report, err := agg.Report(time.Since(start))
	if err != nil {
		return nil, err
	}

	report.RunID = uuid.New().String()
	report.Backend = e.backend.Name()
	report.RowLimit = scorer.rowLimit()

	e.progress("evaluation finished",
		slog.String("run_id", report.RunID),
		slog.Int("total_correct", report.TotalCorrect),
		slog.Int("total_found", report.TotalFound),
		slog.Float64("total_accuracy", report.TotalAccuracy))

	return report, nil
}

func (e *Evaluator) progress(msg string, attrs ...any) {
	if e.cfg.Verbose {
		e.logger.Info(msg, attrs...)
	}
}
