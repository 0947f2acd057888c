package embeval

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBinaryFile(t testing.TB, embeds *Embeddings) string {
	path := filepath.Join(t.TempDir(), "vectors.bin")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, WriteWord2VecBinary(f, embeds))

	return path
}

func TestReadWord2VecBinary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWord2VecBinary(&buf, analogyEmbeddings(t)))

	embeds, err := ReadWord2VecBinary(bufio.NewReader(&buf), false)
	require.NoError(t, err)

	assert.Equal(t, 4, embeds.Size())
	assert.Equal(t, 2, embeds.Dims())
	assert.False(t, embeds.Normalized())

	vec, ok := embeds.Embedding("d")
	require.True(t, ok)
	assert.Equal(t, []float32{-1, 0}, vec)

	idx, ok := embeds.Index("c")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestReadWord2VecBinaryNormalize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWord2VecBinary(&buf, analogyEmbeddings(t)))

	embeds, err := ReadWord2VecBinary(bufio.NewReader(&buf), true)
	require.NoError(t, err)
	assert.True(t, embeds.Normalized())

	vec, _ := embeds.Embedding("c")
	assert.InDelta(t, 1.0, l2(vec), normTolerance)
}

func TestReadWord2VecBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWord2VecBinary(&buf, analogyEmbeddings(t)))

	truncated := buf.Bytes()[:buf.Len()-6]
	_, err := ReadWord2VecBinary(bufio.NewReader(bytes.NewReader(truncated)), false)
	assert.Error(t, err)

	_, err = ReadWord2VecBinary(bufio.NewReader(strings.NewReader("garbage")), false)
	assert.Error(t, err)
}

func TestReadText(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"glove", "a 1 0\nb 0 1\nc 1 1\nd -1 0\n"},
		{"word2vec header", "4 2\na 1 0\nb 0 1\nc 1 1\nd -1 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embeds, err := ReadText(strings.NewReader(tt.input), false)
			require.NoError(t, err)

			assert.Equal(t, 4, embeds.Size())
			assert.Equal(t, 2, embeds.Dims())

			vec, ok := embeds.Embedding("c")
			require.True(t, ok)
			assert.Equal(t, []float32{1, 1}, vec)
		})
	}
}

func TestReadTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"ragged", "a 1 0\nb 0 1 2\n"},
		{"not a number", "a 1 x\n"},
		{"no vector", "a 1 0\nb\n"},
		{"zero size header", "4 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input), false)
			assert.Error(t, err)
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, analogyEmbeddings(t)))

	assert.Equal(t, "a 1.000000 0.000000\nb 0.000000 1.000000\nc 1.000000 1.000000\nd -1.000000 0.000000\n", buf.String())
}

func TestReadEmbeddingsFile(t *testing.T) {
	binPath := writeBinaryFile(t, analogyEmbeddings(t))

	embeds, err := ReadEmbeddingsFile(binPath, FormatAuto, false)
	require.NoError(t, err)
	assert.Equal(t, 4, embeds.Size())

	textPath := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("a 1 0\nb 0 1\n"), 0o644))

	embeds, err = ReadEmbeddingsFile(textPath, FormatAuto, true)
	require.NoError(t, err)
	assert.Equal(t, 2, embeds.Size())
	assert.True(t, embeds.Normalized())

	_, err = ReadEmbeddingsFile(textPath, FormatBinary, false)
	assert.Error(t, err)

	_, err = ReadEmbeddingsFile(textPath, "xml", false)
	assert.Error(t, err)
}
