package embeval

import (
	"fmt"
	"sort"

	"github.com/viterin/vek/vek32"
)

// WordSimilarity is a word with its similarity to a query.
type WordSimilarity struct {
	Word       string
	Similarity float32
}

// Nearest answers top-k similarity queries on normalized embeddings.
type Nearest struct {
	embeds  *Embeddings
	backend Backend
	sims    []float32
}

// NewNearest creates a nearest neighbour searcher. The embeddings are
// normalized if that was not done yet.
func NewNearest(embeds *Embeddings, backend Backend) *Nearest {
	if !embeds.Normalized() {
		embeds.Normalize()
	}

	return &Nearest{
		embeds:  embeds,
		backend: backend,
		sims:    make([]float32, embeds.Size()),
	}
}

// Analogy answers word1 is to word2 as word3 is to ?, returning the limit
// words closest to word2 - word1 + word3. The three query words are never
// returned.
func (n *Nearest) Analogy(word1, word2, word3 string, limit int) ([]WordSimilarity, error) {
	idx1, err := n.index(word1)
	if err != nil {
		return nil, err
	}

	idx2, err := n.index(word2)
	if err != nil {
		return nil, err
	}

	idx3, err := n.index(word3)
	if err != nil {
		return nil, err
	}

	query := make([]float32, n.embeds.Dims())
	BuildQuery(n.embeds.Matrix(), Tuple{A: idx2, B: idx1, D: idx3}, query)

	return n.similarity(query, []int{idx1, idx2, idx3}, limit), nil
}

// Similarity returns the limit words closest to word, excluding word.
func (n *Nearest) Similarity(word string, limit int) ([]WordSimilarity, error) {
	idx, err := n.index(word)
	if err != nil {
		return nil, err
	}

	query, _ := n.embeds.Embedding(word)

	return n.similarity(query, []int{idx}, limit), nil
}

func (n *Nearest) index(word string) (int, error) {
	idx, ok := n.embeds.Index(word)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWord, word)
	}
	return idx, nil
}

func (n *Nearest) similarity(query []float32, skips []int, limit int) []WordSimilarity {
	m := n.embeds.Matrix()
	n.backend.MulTrans(1, m.Rows, m.Cols, query, m.Data, n.sims)

	for _, idx := range skips {
		n.sims[idx] = MaskValue
	}

	results := make([]WordSimilarity, 0, limit)
	if limit <= 0 {
		return results
	}

	// Skip everything below the current k-th best without a search.
	for idx, sim := range n.sims {
		if sim == MaskValue {
			continue
		}

		if len(results) == limit && sim <= results[limit-1].Similarity {
			continue
		}

		ip := sort.Search(len(results), func(i int) bool {
			return results[i].Similarity < sim
		})
		if ip < limit {
			results = insertWithLimit(results, limit, ip, WordSimilarity{n.embeds.Word(idx), sim})
		}
	}

	return results
}

func insertWithLimit(slice []WordSimilarity, limit, index int, value WordSimilarity) []WordSimilarity {
	if len(slice) < limit {
		slice = append(slice, WordSimilarity{})
	}

	copy(slice[index+1:], slice[index:len(slice)-1])
	slice[index] = value
	return slice
}

// Dot returns the cosine similarity of two normalized words.
func (n *Nearest) Dot(word1, word2 string) (float32, error) {
	v1, ok := n.embeds.Embedding(word1)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWord, word1)
	}

	v2, ok := n.embeds.Embedding(word2)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWord, word2)
	}

	return vek32.Dot(v1, v2), nil
}
