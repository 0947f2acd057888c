package embeval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a named group of analogy questions.
type Category struct {
	Name string

	// Tuples are the questions of which all words were found.
	Tuples []Tuple

	// Found and NotFound count questions that could and could not be
	// resolved against the vocabulary.
	Found    int
	NotFound int
}

// Questions is a parsed question file.
type Questions struct {
	// Categories in the order of the question file.
	Categories []*Category
}

// Found returns the number of resolved questions in all categories.
func (q *Questions) Found() int {
	n := 0
	for _, cat := range q.Categories {
		n += cat.Found
	}
	return n
}

// NotFound returns the number of discarded questions in all categories.
func (q *Questions) NotFound() int {
	n := 0
	for _, cat := range q.Categories {
		n += cat.NotFound
	}
	return n
}

// ReadQuestions reads an analogy question file. A line of the form
// ": name" starts a new category; every other non-empty line holds the
// four words of a question. Questions with a word that lookup cannot
// resolve are counted as not found and dropped. If lower is true, lines
// are lowercased before they are processed.
func ReadQuestions(r io.Reader, lookup Vocabulary, lower bool) (*Questions, error) {
	var (
		questions = &Questions{}
		seen      = make(map[string]bool)
		cat       *Category
		lowerCase = cases.Lower(language.Und)
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimRightFunc(scanner.Text(), isSpace)
		if lower {
			line = lowerCase.String(line)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, ":") {
			name, err := categoryName(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			if seen[name] {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("duplicate category %q", name)}
			}
			seen[name] = true

			cat = &Category{Name: name}
			questions.Categories = append(questions.Categories, cat)
			continue
		}

		if cat == nil {
			return nil, &ParseError{Line: lineNo, Msg: "question before the first category"}
		}

		words := strings.Fields(line)
		if len(words) != 4 {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected 4 words, got %d: %s", len(words), line)}
		}

		var ids [4]int
		found := true
		for i, word := range words {
			idx, ok := lookup.Index(word)
			if !ok {
				found = false
				break
			}
			ids[i] = idx
		}

		if !found {
			cat.NotFound++
			continue
		}

		cat.Found++
		cat.Tuples = append(cat.Tuples, Tuple{A: ids[0], B: ids[1], C: ids[2], D: ids[3]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// ReadQuestionsFile reads the question file at path.
func ReadQuestionsFile(path string, lookup Vocabulary, lower bool) (*Questions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	questions, err := ReadQuestions(f, lookup, lower)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return questions, nil
}

func categoryName(line string) (string, error) {
	if len(line) < 2 || line[0] != ':' || line[1] != ' ' {
		return "", fmt.Errorf("malformed category line: %s", line)
	}

	name := strings.TrimSpace(line[2:])
	if name == "" {
		return "", fmt.Errorf("empty category name")
	}

	return name, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
