package oracle

import (
	"fmt"

	"github.com/fractalqb/nlcmp"
)

// ParseError is returned by Parse. Err wraps one of nlcmp's sentinel errors.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%s", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) sideError(s nlcmp.Side) error {
	return &nlcmp.SyntaxError{Side: s, Offset: e.Offset, Err: e.Err}
}

func parseErrorf(off int, err error, format string, args ...any) *ParseError {
	return &ParseError{
		Offset: off,
		Err:    fmt.Errorf("%w: "+format, append([]any{err}, args...)...),
	}
}

// Parse reads exactly one element from line. Blanks between tokens are
// ignored.
func Parse(line []byte) (Element, error) {
	e, err := parse(line)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func parse(line []byte) (Element, *ParseError) {
	p := parser{src: line}
	p.blanks()
	if p.eof() {
		return nil, parseErrorf(p.pos, nlcmp.ErrSyntax, "empty line")
	}
	e, err := p.element()
	if err != nil {
		return nil, err
	}
	if p.blanks(); !p.eof() {
		return nil, parseErrorf(p.pos, nlcmp.ErrSyntax, "trailing data after element")
	}
	return e, nil
}

type parser struct {
	src []byte
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) blanks() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) element() (Element, *ParseError) {
	if p.eof() {
		return nil, parseErrorf(p.pos, nlcmp.ErrUnbalanced, "line ends inside list")
	}
	switch c := p.src[p.pos]; {
	case c == '[':
		p.pos++
		return p.list()
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos++; !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9'; p.pos++ {
		}
		return Number(p.src[start:p.pos]), nil
	case c == ',':
		return nil, parseErrorf(p.pos, nlcmp.ErrComma, "expect element")
	case c == ']':
		return nil, parseErrorf(p.pos, nlcmp.ErrSyntax, "expect element, have ']'")
	}
	return nil, parseErrorf(p.pos, nlcmp.ErrSyntax, "invalid character %q", p.src[p.pos])
}

// list parses the elements after an opening '[' up to the closing ']'.
func (p *parser) list() (Element, *ParseError) {
	l := List{}
	p.blanks()
	if !p.eof() && p.src[p.pos] == ']' {
		p.pos++
		return l, nil
	}
	for {
		p.blanks()
		e, err := p.element()
		if err != nil {
			return nil, err
		}
		l = append(l, e)
		p.blanks()
		if p.eof() {
			return nil, parseErrorf(p.pos, nlcmp.ErrUnbalanced, "line ends inside list")
		}
		switch c := p.src[p.pos]; c {
		case ']':
			p.pos++
			return l, nil
		case ',':
			p.pos++
		default:
			return nil, parseErrorf(p.pos, nlcmp.ErrSyntax, "expect ',' or ']', have %q", c)
		}
	}
}
