package embeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cityEmbeddings(t testing.TB) *Embeddings {
	embeds := NewEmbeddings(3)
	for _, e := range []struct {
		word string
		vec  []float32
	}{
		{"Paris", []float32{1, 0, 1}},
		{"Frankreich", []float32{1, 0, 0}},
		{"Berlin", []float32{0, 1, 1}},
		{"Deutschland", []float32{0, 1, 0}},
		{"Potsdam", []float32{0, 1, 1.05}},
		{"Hamburg", []float32{0.1, 1, 0.9}},
	} {
		require.NoError(t, embeds.Put(e.word, e.vec))
	}
	return embeds
}

func newTestNearest(t testing.TB) *Nearest {
	backend, err := NewBackend(DefaultBackend)
	require.NoError(t, err)
	return NewNearest(cityEmbeddings(t), backend)
}

func words(results []WordSimilarity) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Word
	}
	return out
}

func TestAnalogy(t *testing.T) {
	nearest := newTestNearest(t)

	answers, err := nearest.Analogy("Paris", "Frankreich", "Berlin", 2)
	require.NoError(t, err)

	require.Len(t, answers, 2)
	assert.Equal(t, "Deutschland", answers[0].Word)
	for _, a := range answers {
		assert.NotContains(t, []string{"Paris", "Frankreich", "Berlin"}, a.Word)
	}
	assert.GreaterOrEqual(t, answers[0].Similarity, answers[1].Similarity)
}

func TestSimilarity(t *testing.T) {
	nearest := newTestNearest(t)

	answers, err := nearest.Similarity("Berlin", 40)
	require.NoError(t, err)

	assert.Len(t, answers, 5, "all other words are returned when the limit exceeds the vocabulary")
	assert.NotContains(t, words(answers), "Berlin")
	assert.Equal(t, []string{"Potsdam", "Hamburg"}, words(answers)[:2])

	for i := 1; i < len(answers); i++ {
		assert.GreaterOrEqual(t, answers[i-1].Similarity, answers[i].Similarity)
	}
}

func TestNearestUnknownWord(t *testing.T) {
	nearest := newTestNearest(t)

	_, err := nearest.Similarity("Bogus", 10)
	assert.ErrorIs(t, err, ErrUnknownWord)

	_, err = nearest.Analogy("Paris", "Bogus", "Berlin", 10)
	assert.ErrorIs(t, err, ErrUnknownWord)

	_, err = nearest.Dot("Paris", "Bogus")
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestNearestDot(t *testing.T) {
	nearest := newTestNearest(t)

	sim, err := nearest.Dot("Frankreich", "Deutschland")
	require.NoError(t, err)
	assert.InDelta(t, 0, sim, 1e-6)

	sim, err = nearest.Dot("Paris", "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 1, sim, 1e-5)
}

func TestInsertWithLimit(t *testing.T) {
	results := []WordSimilarity{{"a", 0.9}, {"b", 0.5}}

	results = insertWithLimit(results, 3, 1, WordSimilarity{"c", 0.7})
	assert.Equal(t, []string{"a", "c", "b"}, words(results))

	results = insertWithLimit(results, 3, 0, WordSimilarity{"d", 0.95})
	assert.Equal(t, []string{"d", "a", "c"}, words(results))
}
