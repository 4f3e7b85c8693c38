package nlcmp

import (
	"bytes"
	"fmt"
)

// Comparer decides the order of two lines.
type Comparer interface {
	Compare(left, right []byte) (Verdict, error)
}

// FirstLineComparer is implemented by comparers that find the end of the
// right line lazily, see Comparator.CompareFirstLine.
type FirstLineComparer interface {
	CompareFirstLine(left, rem []byte) (v Verdict, consumed int, err error)
}

// Comparator is the streaming divergence comparator. It never builds a tree
// of the compared lines. Instead it skips the common prefix of both lines and
// only looks at the structure around the first differing byte. The zero value
// is ready to use. A Comparator holds no state between calls and may be used
// concurrently.
//
// The comparator assumes well-formed input. It reports every malformation it
// happens to run into, but it stops at the first decisive byte and so does not
// see the rest of the lines. Use Validate to reject malformed lines up front.
type Comparator struct {
	// Block size of the prefix scan, see Mismatch. If BlockSize == 0 the
	// DefaultBlockSize is used.
	BlockSize int
}

func (c Comparator) Compare(left, right []byte) (Verdict, error) {
	d := c.divergence(left, right)
	return d.run()
}

func (c Comparator) CompareStrings(left, right string) (Verdict, error) {
	return c.Compare([]byte(left), []byte(right))
}

// CompareFirstLine compares left with the first line of rem. The end of that
// line is not searched up front, the comparison stops where the order is
// decided. Consumed is the number of bytes read from rem. It never reaches
// beyond the '\n' that ends the first line.
func (c Comparator) CompareFirstLine(left, rem []byte) (v Verdict, consumed int, err error) {
	d := c.divergence(left, rem)
	v, err = d.run()
	return v, d.pos[Right], err
}

func (c Comparator) divergence(left, right []byte) *divergence {
	d := &divergence{block: c.BlockSize}
	if d.block == 0 {
		d.block = DefaultBlockSize
	}
	d.src[Left], d.src[Right] = left, right
	return d
}

// divergence is the state of one comparison. A '\n' ends a line like the end
// of its buffer does.
type divergence struct {
	src [2][]byte
	pos [2]int
	// lists opened by one side beyond the common nesting level
	depth [2]int
	// nesting level of the common prefix
	level int
	block int
}

func (d *divergence) run() (Verdict, error) {
	for {
		v, done, err := d.diverge()
		if done || err != nil {
			return v, err
		}
		// Sanity guard: promote unwinds the lists it opened, so both sides
		// are back at the common nesting level here.
		if d.depth[Left] != d.depth[Right] {
			return Equal, fmt.Errorf("%w: depth %d/%d after resync at %d/%d",
				ErrInternal,
				d.depth[Left], d.depth[Right],
				d.pos[Left], d.pos[Right],
			)
		}
		if v, done, err = d.settle(); done || err != nil {
			return v, err
		}
	}
}

// diverge skips the common prefix and resolves the first mismatch. It
// returns done == false when both sides agree up to their next ',' or ']'.
func (d *divergence) diverge() (v Verdict, done bool, err error) {
	for {
		n := Mismatch(d.src[Left][d.pos[Left]:], d.src[Right][d.pos[Right]:], d.block)
		if err = d.advance(n); err != nil {
			return Equal, true, err
		}
		skipped := false
		for _, s := range [...]Side{Left, Right} {
			if d.skipBlank(s) > 0 {
				skipped = true
				if err = d.splitNumber(s); err != nil {
					return Equal, true, err
				}
			}
		}
		if v, done, err = d.exhausted(); done {
			return v, done, err
		}
		if !skipped {
			break
		}
	}
	if err = d.splitNumber(Left); err != nil {
		return Equal, true, err
	}
	if err = d.splitNumber(Right); err != nil {
		return Equal, true, err
	}
	lc, rc := d.peek(Left), d.peek(Right)
	switch {
	case isDigit(lc) && isDigit(rc):
		// Both are inside a number that agreed so far.
		if lc < rc {
			return Less, true, nil
		}
		return Greater, true, nil
	case rc == ']' && (lc == ',' || lc == '[' || isDigit(lc)):
		return Greater, true, nil
	case lc == ']' && (rc == ',' || rc == '[' || isDigit(rc)):
		return Less, true, nil
	case isDigit(lc) && rc == ',':
		return Greater, true, nil
	case lc == ',' && isDigit(rc):
		return Less, true, nil
	case lc == rc:
		return Equal, true, fmt.Errorf("%w: mismatch of equal bytes '%c' at %d/%d",
			ErrInternal, lc, d.pos[Left], d.pos[Right])
	case isDigit(lc) && rc == '[':
		return d.promote(Right)
	case lc == '[' && isDigit(rc):
		return d.promote(Left)
	case lc == ',' && rc == '[':
		return Equal, true, syntaxErrorf(Left, d.pos[Left], ErrComma, "expect element")
	case lc == '[' && rc == ',':
		return Equal, true, syntaxErrorf(Right, d.pos[Right], ErrComma, "expect element")
	}
	s := Left
	if isStructural(lc) {
		s = Right
	}
	return Equal, true, syntaxErrorf(s, d.pos[s], ErrSyntax, "invalid character '%c'", d.peek(s))
}

// promote resolves a bare number on one side against a list that starts at
// the same position on side deep. The number is compared as if it were
// wrapped in as many lists as deep opens before its first number.
func (d *divergence) promote(deep Side) (v Verdict, done bool, err error) {
	flat := deep.Other()
	dlx := lexerAt(d.src[deep], d.pos[deep])
	dtok, opened, err := nextComparable(&dlx, deep)
	if err != nil {
		return Equal, true, err
	}
	if dtok.Kind == Close {
		// An empty list is less than any number.
		return deep.orient(Less), true, nil
	}
	flx := lexerAt(d.src[flat], d.pos[flat])
	ftok := flx.Next()
	if ftok.Kind != Number {
		return Equal, true, fmt.Errorf("%w: expect number on %s side at %d",
			ErrInternal, flat, ftok.Start)
	}
	if c := bytes.Compare(dlx.Bytes(dtok), flx.Bytes(ftok)); c != 0 {
		return deep.orient(Verdict(c)), true, nil
	}
	d.depth[deep] += opened
	for range opened {
		tok := dlx.Next()
		switch tok.Kind {
		case Close:
			d.depth[deep]--
		case Comma:
			// The list has more elements than the single number.
			return deep.orient(Greater), true, nil
		case EOF, Newline:
			return Equal, true, syntaxErrorf(deep, tok.Start, ErrUnbalanced,
				"line ends inside %d open lists", d.depth[deep])
		default:
			return Equal, true, syntaxErrorf(deep, tok.Start, ErrSyntax,
				"expect ',' or ']', have %s", tok.Kind)
		}
	}
	d.pos[deep], d.pos[flat] = dlx.Pos(), flx.Pos()
	return Equal, false, nil
}

// settle consumes pairs of closing brackets until both sides move on to the
// next element or the order is decided.
func (d *divergence) settle() (v Verdict, done bool, err error) {
	for {
		d.skipBlank(Left)
		d.skipBlank(Right)
		if v, done, err = d.exhausted(); done {
			return v, done, err
		}
		lc, rc := d.peek(Left), d.peek(Right)
		d.pos[Left]++
		d.pos[Right]++
		switch {
		case lc == ']' && rc == ']':
			if d.level--; d.level < 0 {
				return Equal, true, syntaxErrorf(Left, d.pos[Left]-1, ErrUnbalanced, "unexpected ']'")
			}
		case lc == ',' && rc == ',':
			return Equal, false, nil
		case lc == ']' && rc == ',':
			return Less, true, nil
		case lc == ',' && rc == ']':
			return Greater, true, nil
		default:
			s := Left
			if lc == ']' || lc == ',' {
				s = Right
			}
			return Equal, true, syntaxErrorf(s, d.pos[s]-1, ErrSyntax,
				"expect ',' or ']', have '%c'", d.src[s][d.pos[s]-1])
		}
	}
}

// exhausted decides the order if at least one side reached its line end.
func (d *divergence) exhausted() (v Verdict, done bool, err error) {
	le, re := d.atEnd(Left), d.atEnd(Right)
	switch {
	case le && re:
		if d.level != 0 {
			return Equal, true, syntaxErrorf(Left, d.pos[Left], ErrUnbalanced,
				"line ends inside %d open lists", d.level)
		}
		return Equal, true, nil
	case le:
		return Less, true, nil
	case re:
		return Greater, true, nil
	}
	return Equal, false, nil
}

// advance moves both sides over a common prefix of n bytes.
func (d *divergence) advance(n int) error {
	if n == 0 {
		return nil
	}
	prefix := d.src[Left][d.pos[Left] : d.pos[Left]+n]
	if i := bytes.IndexByte(prefix, '\n'); i >= 0 {
		// Both lines end at the same offset, what follows is not compared.
		prefix, n = prefix[:i], i
	}
	closes := bytes.Count(prefix, []byte{']'})
	if closes > d.level {
		// The level may drop below zero inside the prefix
		if err := d.walkLevel(prefix); err != nil {
			return err
		}
	}
	d.level += bytes.Count(prefix, []byte{'['}) - closes
	d.pos[Left] += n
	d.pos[Right] += n
	return nil
}

// walkLevel checks that the nesting level never drops below zero within
// prefix, which starts at the current position.
func (d *divergence) walkLevel(prefix []byte) error {
	level := d.level
	for off := 0; ; {
		i := bytes.IndexAny(prefix[off:], "[]")
		if i < 0 {
			return nil
		}
		off += i
		if prefix[off] == '[' {
			level++
		} else if level--; level < 0 {
			return syntaxErrorf(Left, d.pos[Left]+off, ErrUnbalanced, "unexpected ']'")
		}
		off++
	}
}

// splitNumber reports blanks between two digits before the current position
// of s. Blanks only separate tokens.
func (d *divergence) splitNumber(s Side) error {
	src, p := d.src[s], d.pos[s]
	if p >= len(src) || !isDigit(src[p]) {
		return nil
	}
	i := p - 1
	for i >= 0 && isBlank(src[i]) {
		i--
	}
	if i < p-1 && i >= 0 && isDigit(src[i]) {
		return syntaxErrorf(s, i+1, ErrSyntax, "blank inside number")
	}
	return nil
}

func (d *divergence) skipBlank(s Side) int {
	p := d.pos[s]
	d.pos[s] = skipBlank(d.src[s], p)
	return d.pos[s] - p
}

func (d *divergence) atEnd(s Side) bool {
	p := d.pos[s]
	return p >= len(d.src[s]) || d.src[s][p] == '\n'
}

func (d *divergence) peek(s Side) byte { return d.src[s][d.pos[s]] }

func isStructural(c byte) bool {
	return c == '[' || c == ']' || c == ',' || isDigit(c)
}
