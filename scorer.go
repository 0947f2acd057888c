package embeval

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// DefaultRowLimit is the default number of queries per block.
	DefaultRowLimit = 500

	// MaskValue is written over the similarities of the input words of a
	// query. It is far below any cosine similarity, so a masked word is
	// never predicted.
	MaskValue float32 = -1e9
)

// Prediction is the best candidate for one query.
type Prediction struct {
	Index int
	Score float32
}

// BlockResult is the outcome of scoring one block of a category.
type BlockResult struct {
	Category    string
	Block       int
	Predictions []Prediction

	// Correct is the number of predictions that match the expected answer.
	Correct int
}

// Scorer finds the nearest vocabulary item of analogy queries, block by
// block.
type Scorer struct {
	Backend  Backend
	RowLimit int

	// Memory is consulted before block buffers are allocated. A nil probe
	// disables the check.
	Memory MemoryProbe

	Logger *slog.Logger
}

// NumBlocks returns the number of blocks needed for n queries.
func (s *Scorer) NumBlocks(n int) int {
	rowLimit := s.rowLimit()
	return (n + rowLimit - 1) / rowLimit
}

// ScoreCategory scores the tuples of a category against the normalized
// embedding matrix m. Blocks are scored in order and fn is called with the
// result of each block. The buffers of a block are reused by the next
// block, so the working set is bounded by the row limit and the vocabulary
// size. An error returned by fn stops scoring.
func (s *Scorer) ScoreCategory(ctx context.Context, m *Matrix, cat *Category, fn func(BlockResult) error) error {
	n := len(cat.Tuples)
	if n == 0 {
		return nil
	}

	rowLimit := s.rowLimit()
	rows := min(rowLimit, n)

	if err := s.checkMemory(ctx, rows, m); err != nil {
		return err
	}

	buf, err := newBlockBuffers(rows, m)
	if err != nil {
		return err
	}

	for block, start := 0, 0; start < n; block, start = block+1, start+rowLimit {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+rowLimit, n)

		result := s.scoreBlock(m, cat.Tuples[start:end], buf)
		result.Category = cat.Name
		result.Block = block

		if err := fn(result); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scorer) rowLimit() int {
	if s.RowLimit <= 0 {
		return DefaultRowLimit
	}
	return s.RowLimit
}

func (s *Scorer) checkMemory(ctx context.Context, rows int, m *Matrix) error {
	if s.Memory == nil {
		return nil
	}

	need := blockBytes(rows, m.Rows, m.Cols)

	avail, err := s.Memory.Available(ctx)
	if err != nil {
		s.logger().Warn("cannot probe available memory",
			slog.String("error", err.Error()))
		return nil
	}

	if need > avail {
		return fmt.Errorf("%w: block of %d x %d needs %d bytes, %d available",
			ErrResourceExhausted, rows, m.Rows, need, avail)
	}

	return nil
}

func (s *Scorer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(discardHandler)
	}
	return s.Logger
}

// blockBuffers holds the queries and similarities of one block.
type blockBuffers struct {
	queries []float32
	sims    []float32
}

func newBlockBuffers(rows int, m *Matrix) (buf *blockBuffers, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: block of %d x %d: %v", ErrResourceExhausted, rows, m.Rows, r)
		}
	}()

	return &blockBuffers{
		queries: make([]float32, rows*m.Cols),
		sims:    make([]float32, rows*m.Rows),
	}, nil
}

// similarities builds the queries of tuples and returns the masked
// similarity matrix of the block, with one row per tuple and one column
// per vocabulary item.
func (s *Scorer) similarities(m *Matrix, tuples []Tuple, buf *blockBuffers) *Matrix {
	k := len(tuples)

	queries := &Matrix{Rows: k, Cols: m.Cols, Data: buf.queries[:k*m.Cols]}
	BuildQueries(m, tuples, queries)

	sims := &Matrix{Rows: k, Cols: m.Rows, Data: buf.sims[:k*m.Rows]}
	s.Backend.MulTrans(k, m.Rows, m.Cols, queries.Data, m.Data, sims.Data)

	for j, t := range tuples {
		row := sims.Row(j)
		row[t.A] = MaskValue
		row[t.B] = MaskValue
		row[t.D] = MaskValue
	}

	return sims
}

func (s *Scorer) scoreBlock(m *Matrix, tuples []Tuple, buf *blockBuffers) BlockResult {
	sims := s.similarities(m, tuples, buf)

	result := BlockResult{
		Predictions: make([]Prediction, len(tuples)),
	}

	for j, t := range tuples {
		idx, score := argMax(sims.Row(j))
		result.Predictions[j] = Prediction{Index: idx, Score: score}
		if idx == t.C {
			result.Correct++
		}
	}

	return result
}

// argMax returns the first index of the largest value in row and the value
// itself. An empty row gives index -1.
func argMax(row []float32) (int, float32) {
	if len(row) == 0 {
		return -1, 0
	}

	best, bestVal := 0, row[0]
	for i := 1; i < len(row); i++ {
		if row[i] > bestVal {
			best, bestVal = i, row[i]
		}
	}

	return best, bestVal
}
