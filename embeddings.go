package embeval

import (
	"fmt"
)

// Matrix is a dense row-major matrix of float32 values.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float32, rows*cols),
	}
}

// Row returns row i. The returned slice shares the matrix storage.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Embeddings is a vocabulary together with one embedding per word. Word
// indices are assigned in insertion order and are the row indices of the
// embedding matrix.
type Embeddings struct {
	dims       int
	words      []string
	indices    map[string]int
	data       []float32
	normalized bool
}

// NewEmbeddings creates an empty table of embeddings with the given
// dimensionality.
func NewEmbeddings(dims int) *Embeddings {
	return &Embeddings{
		dims:    dims,
		indices: make(map[string]int),
	}
}

// Put adds the embedding of a word. If the word is already present, its
// embedding is replaced.
func (e *Embeddings) Put(word string, embedding []float32) error {
	if len(embedding) != e.dims {
		return fmt.Errorf("embedding of %q has %d dimensions, expected %d", word, len(embedding), e.dims)
	}

	if idx, ok := e.indices[word]; ok {
		copy(e.data[idx*e.dims:(idx+1)*e.dims], embedding)
		e.normalized = false
		return nil
	}

	e.indices[word] = len(e.words)
	e.words = append(e.words, word)
	e.data = append(e.data, embedding...)
	e.normalized = false

	return nil
}

// Size returns the number of words.
func (e *Embeddings) Size() int {
	return len(e.words)
}

// Dims returns the embedding dimensionality.
func (e *Embeddings) Dims() int {
	return e.dims
}

// Index returns the index of a word.
func (e *Embeddings) Index(word string) (int, bool) {
	idx, ok := e.indices[word]
	return idx, ok
}

// Word returns the word with the given index.
func (e *Embeddings) Word(idx int) string {
	return e.words[idx]
}

// Embedding returns the embedding of a word. The returned slice shares
// storage with the table and must not be modified.
func (e *Embeddings) Embedding(word string) ([]float32, bool) {
	idx, ok := e.indices[word]
	if !ok {
		return nil, false
	}

	return e.data[idx*e.dims : (idx+1)*e.dims], true
}

// Iterate calls f for every word and its embedding, in index order. The
// iteration stops when f returns false.
func (e *Embeddings) Iterate(f func(word string, embedding []float32) bool) {
	for idx, word := range e.words {
		if !f(word, e.data[idx*e.dims:(idx+1)*e.dims]) {
			return
		}
	}
}

// Matrix returns the embeddings as a Size() x Dims() matrix. The matrix
// shares storage with the table.
func (e *Embeddings) Matrix() *Matrix {
	return &Matrix{
		Rows: len(e.words),
		Cols: e.dims,
		Data: e.data,
	}
}

// Normalized reports whether all embeddings have been normalized.
func (e *Embeddings) Normalized() bool {
	return e.normalized
}

// Normalize scales all embeddings to unit length. Embeddings with a zero
// length are left as zero vectors. The number of such embeddings is
// returned.
func (e *Embeddings) Normalize() int {
	zero := NormalizeRows(e.Matrix())
	e.normalized = true
	return zero
}
