package embeval

import (
	"fmt"
	"sort"
	"time"
)

// ScoreRecord holds the counts of one category.
type ScoreRecord struct {
	Found    int
	NotFound int
	Correct  int
}

// BlockKey identifies a scoring block within a category.
type BlockKey struct {
	Category string
	Block    int
}

func (k BlockKey) String() string {
	return fmt.Sprintf("%s_%d", k.Category, k.Block)
}

// Aggregator accumulates category counts and block results into a Report.
type Aggregator struct {
	records map[string]*ScoreRecord
	blocks  map[BlockKey]int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		records: make(map[string]*ScoreRecord),
		blocks:  make(map[BlockKey]int),
	}
}

// AddCategory adds the found and not found counts of a category.
func (a *Aggregator) AddCategory(name string, found, notFound int) {
	rec := a.record(name)
	rec.Found += found
	rec.NotFound += notFound
}

// AddBlock adds the number of correct answers of a scored block.
func (a *Aggregator) AddBlock(result BlockResult) {
	a.blocks[BlockKey{Category: result.Category, Block: result.Block}] += result.Correct
	a.record(result.Category).Correct += result.Correct
}

func (a *Aggregator) record(name string) *ScoreRecord {
	rec, ok := a.records[name]
	if !ok {
		rec = &ScoreRecord{}
		a.records[name] = rec
	}
	return rec
}

// Report builds the report. It fails with ErrNoValidExamples when no
// question was found in any category.
func (a *Aggregator) Report(elapsed time.Duration) (*Report, error) {
	report := &Report{
		Elapsed: elapsed,
	}

	names := make([]string, 0, len(a.records))
	for name := range a.records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec := a.records[name]
		report.Categories = append(report.Categories, CategoryScore{
			Name:     name,
			Found:    rec.Found,
			NotFound: rec.NotFound,
			Correct:  rec.Correct,
			Accuracy: ratio(rec.Correct, rec.Found),
		})
		report.TotalCorrect += rec.Correct
		report.TotalFound += rec.Found
		report.TotalNotFound += rec.NotFound
	}

	keys := make([]BlockKey, 0, len(a.blocks))
	for key := range a.blocks {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Block < keys[j].Block
	})

	for _, key := range keys {
		report.Blocks = append(report.Blocks, BlockScore{
			Key:      key.String(),
			Category: key.Category,
			Block:    key.Block,
			Correct:  a.blocks[key],
		})
	}

	if report.TotalFound == 0 {
		return nil, fmt.Errorf("%w (%d questions discarded)", ErrNoValidExamples, report.TotalNotFound)
	}
	report.TotalAccuracy = ratio(report.TotalCorrect, report.TotalFound)

	return report, nil
}

// ratio returns n / d, or zero if d is zero.
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
