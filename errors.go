package nlcmp

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks an unexpected character class at a scan position.
	ErrSyntax = errors.New("syntax error")
	// ErrComma marks a comma where an element is expected.
	ErrComma = fmt.Errorf("%w: misplaced comma", ErrSyntax)
	// ErrUnbalanced marks a line whose brackets do not match up.
	ErrUnbalanced = errors.New("unbalanced brackets")
	// ErrInternal marks a state the comparator must never reach on any
	// input. Seeing it means the prefix scanner and the tokenizer got out of
	// step.
	ErrInternal = errors.New("internal consistency violation")
	// ErrMissingLine marks a pair without its second line.
	ErrMissingLine = errors.New("missing right line")
)

// SyntaxError locates a structural error inside one of the compared lines.
type SyntaxError struct {
	Side   Side
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s %d:%s", e.Side, e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func syntaxErrorf(s Side, off int, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Side:   s,
		Offset: off,
		Err:    fmt.Errorf("%w: "+format, append([]any{err}, args...)...),
	}
}

// PairError locates an error inside the whole input.
type PairError struct {
	// 1-based index of the pair
	Index int
	// 1-based input line of the pair's left line
	Line int
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("pair %d (line %d):%s", e.Index, e.Line, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }
