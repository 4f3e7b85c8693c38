package nlcmp

import "fmt"

// Kind is the lexical class of a Token.
type Kind uint8

const (
	EOF Kind = iota
	Comma
	// Open is a run of consecutive '['. Consecutive opens never need to be
	// inspected one by one.
	Open
	Close
	Number
	Newline
	Invalid
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Comma:
		return "','"
	case Open:
		return "'['"
	case Close:
		return "']'"
	case Number:
		return "number"
	case Newline:
		return "newline"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a span [Start, End) of the lexer's input.
type Token struct {
	Kind       Kind
	Start, End int
}

// Len is the number of input bytes of t. For Open it is the number of
// brackets in the run.
func (t Token) Len() int { return t.End - t.Start }

// Lexer splits one line into tokens. Offsets of tokens are absolute offsets
// into the input given to NewLexer. A Lexer is a small value and is meant to
// be copied freely.
type Lexer struct {
	src []byte
	pos int
}

func NewLexer(src []byte) Lexer { return Lexer{src: src} }

func lexerAt(src []byte, pos int) Lexer { return Lexer{src: src, pos: pos} }

// Pos returns the offset of the next unread byte.
func (lx *Lexer) Pos() int { return lx.pos }

// Remainder returns the unread part of the input.
func (lx *Lexer) Remainder() []byte { return lx.src[lx.pos:] }

// Bytes returns the input bytes of t.
func (lx *Lexer) Bytes(t Token) []byte { return lx.src[t.Start:t.End] }

func (lx *Lexer) Next() Token {
	lx.pos = skipBlank(lx.src, lx.pos)
	start := lx.pos
	if start >= len(lx.src) {
		return Token{Kind: EOF, Start: start, End: start}
	}
	kind := Invalid
	switch c := lx.src[start]; {
	case c == '[':
		kind = Open
		for lx.pos++; lx.pos < len(lx.src) && lx.src[lx.pos] == '['; lx.pos++ {
		}
		return Token{Kind: kind, Start: start, End: lx.pos}
	case c == ']':
		kind = Close
	case c == ',':
		kind = Comma
	case c == '\n':
		kind = Newline
	case isDigit(c):
		for lx.pos++; lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]); lx.pos++ {
		}
		return Token{Kind: Number, Start: start, End: lx.pos}
	}
	lx.pos++
	return Token{Kind: kind, Start: start, End: lx.pos}
}

// nextComparable skips Open runs up to the next Number or Close and returns
// it together with the number of lists opened on the way.
func nextComparable(lx *Lexer, s Side) (tok Token, depth int, err error) {
	for {
		tok = lx.Next()
		switch tok.Kind {
		case Number, Close:
			return tok, depth, nil
		case Open:
			depth += tok.Len()
		case Comma:
			return tok, depth, syntaxErrorf(s, tok.Start, ErrComma, "expect element")
		case EOF, Newline:
			return tok, depth, syntaxErrorf(s, tok.Start, ErrUnbalanced,
				"line ends inside %d open lists", depth)
		default:
			return tok, depth, syntaxErrorf(s, tok.Start, ErrSyntax,
				"invalid character '%c'", lx.src[tok.Start])
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

func skipBlank(src []byte, pos int) int {
	for pos < len(src) && isBlank(src[pos]) {
		pos++
	}
	return pos
}
