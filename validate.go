package nlcmp

// Where Validate is within the grammar
type vstate uint8

const (
	vStart vstate = iota // before the line's element
	vOpen                // right after '['
	vComma               // right after ','
	vAfter               // right after an element
)

// Validate checks that line is exactly one well-formed element:
//
//	Element := List | Number
//	List    := '[' (Element (',' Element)*)? ']'
//	Number  := [0-9]+
//
// Blanks between tokens are allowed. Errors are *SyntaxError with Side Left.
func Validate(line []byte) error {
	lx := NewLexer(line)
	st, depth := vStart, 0
	for {
		tok := lx.Next()
		switch tok.Kind {
		case Open:
			if st == vAfter {
				return syntaxErrorf(Left, tok.Start, ErrSyntax, "missing ',' before '['")
			}
			depth += tok.Len()
			st = vOpen
		case Number:
			if st == vAfter {
				return syntaxErrorf(Left, tok.Start, ErrSyntax, "missing ',' before number")
			}
			st = vAfter
		case Close:
			switch {
			case depth == 0:
				return syntaxErrorf(Left, tok.Start, ErrUnbalanced, "unexpected ']'")
			case st == vComma:
				return syntaxErrorf(Left, tok.Start, ErrComma, "trailing comma")
			}
			depth--
			st = vAfter
		case Comma:
			if st != vAfter || depth == 0 {
				return syntaxErrorf(Left, tok.Start, ErrComma, "expect element")
			}
			st = vComma
		case EOF:
			switch {
			case st == vStart:
				return syntaxErrorf(Left, tok.Start, ErrSyntax, "empty line")
			case depth > 0:
				return syntaxErrorf(Left, tok.Start, ErrUnbalanced,
					"line ends inside %d open lists", depth)
			}
			return nil
		default:
			return syntaxErrorf(Left, tok.Start, ErrSyntax,
				"invalid character %q", line[tok.Start])
		}
		if st == vAfter && depth == 0 {
			if tok = lx.Next(); tok.Kind != EOF {
				return syntaxErrorf(Left, tok.Start, ErrSyntax, "trailing data after element")
			}
			return nil
		}
	}
}
