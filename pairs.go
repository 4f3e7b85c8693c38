package nlcmp

import (
	"bufio"
	"bytes"
	"io"
)

// Pair is one pair of lines from the input.
type Pair struct {
	// 1-based index of the pair in the input
	Index int
	// 1-based input line of Left
	Line        int
	Left, Right []byte
}

// PairReader reads pairs of lines from a reader. Any number of blank lines may
// separate pairs. The bytes of a Pair are only valid until the next call to
// Scan.
type PairReader struct {
	scn  *bufio.Scanner
	max  int
	lno  int
	left Buffer
	pair Pair
	err  error
}

// NewPairReader creates a PairReader that accepts lines up to maxLine bytes,
// not counting the line end. Longer lines fail with bufio.ErrTooLong. If
// maxLine <= 0 the limit is bufio.MaxScanTokenSize.
func NewPairReader(r io.Reader, maxLine int) *PairReader {
	pr := &PairReader{scn: bufio.NewScanner(r)}
	if maxLine > 0 {
		pr.max = maxLine
		pr.scn.Buffer(nil, maxLine+2) // room for "\r\n"
	}
	return pr
}

func (pr *PairReader) Scan() bool {
	if pr.err != nil {
		return false
	}
	left, ok := pr.line(true)
	if !ok {
		return false
	}
	idx, lno := pr.pair.Index+1, pr.lno
	pr.left.Set(left)
	right, ok := pr.line(false)
	if !ok || isBlankLine(right) {
		if pr.err == nil {
			pr.err = &PairError{Index: idx, Line: lno, Err: ErrMissingLine}
		}
		return false
	}
	pr.pair = Pair{Index: idx, Line: lno, Left: pr.left.B, Right: right}
	return true
}

func (pr *PairReader) Pair() Pair { return pr.pair }

func (pr *PairReader) Err() error { return pr.err }

// Line returns the number of input lines read so far.
func (pr *PairReader) Line() int { return pr.lno }

func (pr *PairReader) line(skipBlanks bool) ([]byte, bool) {
	for pr.scn.Scan() {
		pr.lno++
		l := dropCR(pr.scn.Bytes())
		if pr.max > 0 && len(l) > pr.max {
			pr.err = bufio.ErrTooLong
			return nil, false
		}
		if skipBlanks && isBlankLine(l) {
			continue
		}
		return l, true
	}
	pr.err = pr.scn.Err()
	return nil, false
}

// byteSplitter splits pairs from an input that is completely in memory. The
// lines of its pairs are slices of the input.
type byteSplitter struct {
	rest []byte
	lno  int
	pair Pair
	err  error
}

func (bs *byteSplitter) Scan() bool {
	if bs.err != nil {
		return false
	}
	if bs.rest = skipBlankLines(bs.rest, &bs.lno); len(bs.rest) == 0 {
		return false
	}
	left, rem, _ := bytes.Cut(bs.rest, newline)
	bs.lno++
	idx, lno := bs.pair.Index+1, bs.lno
	right, rem, _ := bytes.Cut(rem, newline)
	if isBlankLine(right) {
		bs.err = &PairError{Index: idx, Line: lno, Err: ErrMissingLine}
		return false
	}
	bs.lno++
	bs.rest = rem
	bs.pair = Pair{Index: idx, Line: lno, Left: dropCR(left), Right: dropCR(right)}
	return true
}

func (bs *byteSplitter) Pair() Pair { return bs.pair }

func (bs *byteSplitter) Err() error { return bs.err }

var newline = []byte{'\n'}

func skipBlankLines(p []byte, lno *int) []byte {
	for len(p) > 0 {
		line, rest, _ := bytes.Cut(p, newline)
		if !isBlankLine(line) {
			return p
		}
		*lno++
		p = rest
	}
	return p
}

func isBlankLine(l []byte) bool { return skipBlank(l, 0) == len(l) }

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1]
	}
	return data
}
