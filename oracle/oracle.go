// Package oracle parses nested-list lines into trees and compares the trees.
// It is the reference for the streaming nlcmp.Comparator and trades speed for
// being obviously right.
package oracle

import (
	"fmt"
	"strings"

	"github.com/fractalqb/nlcmp"
)

// Element is either a Number or a List.
type Element interface {
	element()
}

// Number keeps the digits of a number literal.
type Number string

type List []Element

func (Number) element() {}
func (List) element()   {}

// Compare orders a against b.
func Compare(a, b Element) nlcmp.Verdict {
	switch a := a.(type) {
	case Number:
		switch b := b.(type) {
		case Number:
			return nlcmp.Verdict(strings.Compare(string(a), string(b)))
		case List:
			return compareLists(List{a}, b)
		}
	case List:
		switch b := b.(type) {
		case Number:
			return compareLists(a, List{b})
		case List:
			return compareLists(a, b)
		}
	}
	panic(fmt.Sprintf("oracle: compare %T with %T", a, b))
}

func compareLists(a, b List) nlcmp.Verdict {
	for i := 0; i < len(a) && i < len(b); i++ {
		if v := Compare(a[i], b[i]); v != nlcmp.Equal {
			return v
		}
	}
	switch {
	case len(a) < len(b):
		return nlcmp.Less
	case len(a) > len(b):
		return nlcmp.Greater
	}
	return nlcmp.Equal
}

// Comparer implements nlcmp.Comparer by parsing both lines.
type Comparer struct{}

func (Comparer) Compare(left, right []byte) (nlcmp.Verdict, error) {
	l, err := parse(left)
	if err != nil {
		return nlcmp.Equal, err.sideError(nlcmp.Left)
	}
	r, err := parse(right)
	if err != nil {
		return nlcmp.Equal, err.sideError(nlcmp.Right)
	}
	return Compare(l, r), nil
}

// Format renders e in its canonical form without blanks.
func Format(e Element) string {
	var sb strings.Builder
	format(&sb, e)
	return sb.String()
}

func format(sb *strings.Builder, e Element) {
	switch e := e.(type) {
	case Number:
		sb.WriteString(string(e))
	case List:
		sb.WriteByte('[')
		for i, x := range e {
			if i > 0 {
				sb.WriteByte(',')
			}
			format(sb, x)
		}
		sb.WriteByte(']')
	}
}
