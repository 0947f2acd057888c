package embeval

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Embedding file formats.
const (
	FormatAuto   = "auto"
	FormatBinary = "bin"
	FormatText   = "text"
)

// maxPrealloc caps the number of floats reserved from a file header.
const maxPrealloc = 1 << 28

// ReadWord2VecBinary reads embeddings in the binary word2vec format. If
// normalize is true, the embeddings are normalized to unit length.
func ReadWord2VecBinary(r *bufio.Reader, normalize bool) (*Embeddings, error) {
	var nWords uint64
	if _, err := fmt.Fscanf(r, "%d", &nWords); err != nil {
		return nil, fmt.Errorf("cannot read number of words: %w", err)
	}

	var vSize uint64
	if _, err := fmt.Fscanf(r, "%d", &vSize); err != nil {
		return nil, fmt.Errorf("cannot read vector size: %w", err)
	}

	if vSize == 0 {
		return nil, fmt.Errorf("vector size must be positive")
	}

	embeds := NewEmbeddings(int(vSize))
	embeds.data = make([]float32, 0, min(nWords*vSize, maxPrealloc))

	vec := make([]float32, vSize)
	for w := uint64(0); w < nWords; w++ {
		word, err := r.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("cannot read word %d: %w", w, err)
		}
		word = strings.TrimSpace(word)

		if err = binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("cannot read vector of %q: %w", word, err)
		}

		if err := embeds.Put(word, vec); err != nil {
			return nil, err
		}
	}

	if normalize {
		embeds.Normalize()
	}

	return embeds, nil
}

// ReadText reads embeddings in text format: one word per line, followed
// by its vector components. An optional first line holds the number of
// words and the vector size. If normalize is true, the embeddings are
// normalized to unit length.
func ReadText(r io.Reader, normalize bool) (*Embeddings, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	var embeds *Embeddings

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if lineNo == 1 && isHeader(fields) {
			dims, _ := strconv.Atoi(fields[1])
			if dims <= 0 {
				return nil, fmt.Errorf("line 1: vector size must be positive")
			}
			embeds = NewEmbeddings(dims)
			continue
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: word without vector", lineNo)
		}

		if embeds == nil {
			embeds = NewEmbeddings(len(fields) - 1)
		}

		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vec[i] = float32(val)
		}

		if err := embeds.Put(fields[0], vec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if embeds == nil {
		return nil, fmt.Errorf("no embeddings found")
	}

	if normalize {
		embeds.Normalize()
	}

	return embeds, nil
}

func isHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}

	for _, field := range fields {
		if _, err := strconv.ParseUint(field, 10, 64); err != nil {
			return false
		}
	}

	return true
}

// ReadEmbeddingsFile reads embeddings from a file. With FormatAuto, files
// with the .bin extension are read as binary word2vec files and all other
// files as text.
func ReadEmbeddingsFile(path, format string, normalize bool) (*Embeddings, error) {
	if format == FormatAuto || format == "" {
		format = FormatText
		if filepath.Ext(path) == ".bin" {
			format = FormatBinary
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var embeds *Embeddings
	switch format {
	case FormatBinary:
		embeds, err = ReadWord2VecBinary(bufio.NewReader(f), normalize)
	case FormatText:
		embeds, err = ReadText(f, normalize)
	default:
		return nil, fmt.Errorf("unknown embedding format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return embeds, nil
}

// WriteWord2VecBinary writes embeddings in the binary word2vec format.
func WriteWord2VecBinary(w io.Writer, embeds *Embeddings) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d\n", embeds.Size(), embeds.Dims()); err != nil {
		return err
	}

	var err error
	embeds.Iterate(func(word string, vec []float32) bool {
		if _, err = bw.WriteString(word + " "); err != nil {
			return false
		}
		if err = binary.Write(bw, binary.LittleEndian, vec); err != nil {
			return false
		}
		err = bw.WriteByte('\n')
		return err == nil
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}

// WriteText writes embeddings in text format, without a header.
func WriteText(w io.Writer, embeds *Embeddings) error {
	bw := bufio.NewWriter(w)

	var err error
	embeds.Iterate(func(word string, vec []float32) bool {
		_, err = fmt.Fprintln(bw, word+" "+floatSliceToString(vec))
		return err == nil
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}

func floatSliceToString(floats []float32) string {
	stringFloats := make([]string, len(floats))

	for idx, float := range floats {
		stringFloats[idx] = strconv.FormatFloat(float64(float), 'f', 6, 32)
	}

	return strings.Join(stringFloats, " ")
}
