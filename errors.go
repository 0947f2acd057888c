package embeval

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidExamples is returned when no question could be resolved
	// against the vocabulary, so that no accuracy can be computed.
	ErrNoValidExamples = errors.New("no valid examples found")

	// ErrResourceExhausted is returned when the buffers of a scoring block
	// cannot be allocated. Lowering the row limit is the remedy.
	ErrResourceExhausted = errors.New("insufficient memory for scoring block")

	// ErrUnknownBackend is returned for backend names that are not
	// compiled in.
	ErrUnknownBackend = errors.New("unknown compute backend")

	// ErrUnknownWord is returned by nearest neighbour queries on words
	// that are not in the vocabulary.
	ErrUnknownWord = errors.New("unknown word")
)

// ParseError is an error in a question file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
