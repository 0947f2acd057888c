package embeval

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// CategoryScore is the result of one category.
type CategoryScore struct {
	Name     string  `json:"name"`
	Found    int     `json:"n_found"`
	NotFound int     `json:"n_not_found"`
	Correct  int     `json:"n_correct"`
	Accuracy float64 `json:"accuracy"`
}

// BlockScore is the number of correct answers in one scoring block.
type BlockScore struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Block    int    `json:"block"`
	Correct  int    `json:"n_correct"`
}

// Report is the outcome of an evaluation.
type Report struct {
	RunID    string `json:"run_id"`
	Backend  string `json:"backend"`
	RowLimit int    `json:"row_limit"`

	// Categories sorted by name.
	Categories []CategoryScore `json:"categories"`

	// Blocks sorted by category and block index.
	Blocks []BlockScore `json:"blocks"`

	TotalCorrect  int           `json:"total_correct"`
	TotalFound    int           `json:"total_found"`
	TotalNotFound int           `json:"total_not_found"`
	TotalAccuracy float64       `json:"total_accuracy"`
	Elapsed       time.Duration `json:"overall_total_time"`
}

// Category returns the score of the named category.
func (r *Report) Category(name string) (CategoryScore, bool) {
	for _, cat := range r.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return CategoryScore{}, false
}

// DiscardedPercent returns the percentage of questions that were dropped
// because a word was missing from the vocabulary.
func (r *Report) DiscardedPercent() float64 {
	return 100 * ratio(r.TotalNotFound, r.TotalFound+r.TotalNotFound)
}

// WriteText writes a per-category table followed by the totals.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "category\tfound\tnot found\tcorrect\taccuracy\t")
	for _, cat := range r.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4f\t\n", cat.Name, cat.Found, cat.NotFound, cat.Correct, cat.Accuracy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s\ntotal correct: %d, total found: %d, discarded: %d (%.2f%%)\ntotal accuracy: %.4f\ntime: %s\n",
		strings.Repeat("-", 60),
		r.TotalCorrect, r.TotalFound, r.TotalNotFound, r.DiscardedPercent(),
		r.TotalAccuracy, r.Elapsed.Round(time.Millisecond))

	return err
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
