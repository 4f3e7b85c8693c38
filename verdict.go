package nlcmp

import "fmt"

// Verdict is the three-way result of comparing two nested-list lines.
type Verdict int

const (
	Less    Verdict = -1
	Equal   Verdict = 0
	Greater Verdict = 1
)

// Reverse returns the verdict seen from the other side.
func (v Verdict) Reverse() Verdict { return -v }

func (v Verdict) String() string {
	switch v {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Symbol returns '<', '=' or '>'. It is the format of golden verdict files.
func (v Verdict) Symbol() byte {
	switch {
	case v < 0:
		return '<'
	case v > 0:
		return '>'
	}
	return '='
}

func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "<", "less":
		return Less, nil
	case "=", "equal":
		return Equal, nil
	case ">", "greater":
		return Greater, nil
	}
	return Equal, fmt.Errorf("invalid verdict '%s'", s)
}

// Side names one of the two compared lines.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) Other() Side { return 1 - s }

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// orient turns a verdict of side s against the other side into a verdict of
// left against right.
func (s Side) orient(v Verdict) Verdict {
	if s == Left {
		return v
	}
	return v.Reverse()
}
