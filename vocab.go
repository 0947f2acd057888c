package embeval

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vocabulary maps words to embedding indices.
type Vocabulary interface {
	Index(word string) (int, bool)
}

// Lookup resolves question words against a vocabulary. When the question
// file is not lowercased, a word that is not found as-is is retried
// capitalized and then title-cased.
type Lookup struct {
	vocab Vocabulary
	lower bool
	title cases.Caser
	rest  cases.Caser
}

// NewLookup creates a lookup. lower tells whether question words have
// been lowercased, in which case no case variants are tried.
func NewLookup(vocab Vocabulary, lower bool) *Lookup {
	return &Lookup{
		vocab: vocab,
		lower: lower,
		title: cases.Title(language.Und),
		rest:  cases.Lower(language.Und),
	}
}

// Index returns the index of word, trying the exact word, its capitalized
// form and its title-cased form, in that order.
func (l *Lookup) Index(word string) (int, bool) {
	if idx, ok := l.vocab.Index(word); ok {
		return idx, true
	}

	if l.lower {
		return 0, false
	}

	if idx, ok := l.vocab.Index(l.capitalize(word)); ok {
		return idx, true
	}

	return l.vocab.Index(l.title.String(word))
}

// capitalize uppercases the first rune and lowercases the rest.
func (l *Lookup) capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}

	return string(unicode.ToUpper(r)) + l.rest.String(word[size:])
}
