package nlcmp

import (
	"bytes"
	"io"
	"sync"
)

// PairFunc is called with the verdict of each compared pair.
type PairFunc func(p Pair, v Verdict)

// Sum adds up the 1-based indices of all pairs whose left line is less than
// its right line. A zero value is valid for use and can be reused for more
// than one input. It must not be used concurrently.
//
// Any error makes the whole sum fail, there are no partial results.
type Sum struct {
	// Comparer decides each pair. If Comparer == nil a zero Comparator is used.
	Comparer Comparer
	// SinglePass lets in-memory inputs compare each right line before its
	// end is searched when Comparer implements FirstLineComparer. It is
	// ignored with Workers > 1. Unless Lax is set the right line is still
	// read up to its end once for validation.
	SinglePass bool
	// Lax skips the validation of both lines of each pair. Malformed lines
	// may then be ordered without an error.
	Lax bool
	// Workers > 1 compares that many pairs in parallel.
	Workers int
	// MaxLine limits the line length for Reader, see NewPairReader.
	MaxLine int
	// OnPair is called for each successfully compared pair. With
	// Workers > 1 the calls are not in input order.
	OnPair PairFunc

	pool Pool
}

type pairSource interface {
	Scan() bool
	Pair() Pair
	Err() error
}

func (s *Sum) Reader(r io.Reader) (uint64, error) {
	return s.fold(NewPairReader(r, s.MaxLine))
}

func (s *Sum) Bytes(input []byte) (uint64, error) {
	if s.SinglePass && s.Workers <= 1 {
		if fl, ok := s.comparer().(FirstLineComparer); ok {
			return s.singlePass(fl, input)
		}
	}
	return s.fold(&byteSplitter{rest: input})
}

func (s *Sum) String(input string) (uint64, error) {
	return s.Bytes([]byte(input))
}

func (s *Sum) comparer() Comparer {
	if s.Comparer == nil {
		return Comparator{}
	}
	return s.Comparer
}

func (s *Sum) fold(src pairSource) (uint64, error) {
	cmpr := s.comparer()
	if s.Workers > 1 {
		return s.parallel(cmpr, src)
	}
	var sum uint64
	for src.Scan() {
		p := src.Pair()
		v, err := s.verdict(cmpr, p)
		if err != nil {
			return 0, err
		}
		s.count(&sum, p, v)
	}
	if err := src.Err(); err != nil {
		return 0, err
	}
	return sum, nil
}

func (s *Sum) count(sum *uint64, p Pair, v Verdict) {
	if s.OnPair != nil {
		s.OnPair(p, v)
	}
	if v == Less {
		*sum += uint64(p.Index)
	}
}

func (s *Sum) verdict(cmpr Comparer, p Pair) (Verdict, error) {
	if !s.Lax {
		if err := validatePair(p); err != nil {
			return Equal, err
		}
	}
	v, err := cmpr.Compare(p.Left, p.Right)
	if err != nil {
		return Equal, &PairError{Index: p.Index, Line: p.Line, Err: err}
	}
	return v, nil
}

func validatePair(p Pair) error {
	if err := Validate(p.Left); err != nil {
		return &PairError{Index: p.Index, Line: p.Line, Err: err}
	}
	if err := Validate(p.Right); err != nil {
		if se, ok := err.(*SyntaxError); ok {
			se.Side = Right
		}
		return &PairError{Index: p.Index, Line: p.Line + 1, Err: err}
	}
	return nil
}

func (s *Sum) singlePass(cmpr FirstLineComparer, input []byte) (uint64, error) {
	var sum uint64
	lno := 0
	for idx := 1; ; idx++ {
		if input = skipBlankLines(input, &lno); len(input) == 0 {
			return sum, nil
		}
		left, rem, _ := bytes.Cut(input, newline)
		lno++
		p := Pair{Index: idx, Line: lno, Left: dropCR(left)}
		if isBlankLine(firstLineHead(rem)) {
			return 0, &PairError{Index: idx, Line: lno, Err: ErrMissingLine}
		}
		if !s.Lax {
			right, _, _ := bytes.Cut(rem, newline)
			p.Right = dropCR(right)
			if err := validatePair(p); err != nil {
				return 0, err
			}
		}
		v, n, err := cmpr.CompareFirstLine(p.Left, rem)
		if err != nil {
			return 0, &PairError{Index: idx, Line: lno, Err: err}
		}
		if i := bytes.IndexByte(rem[n:], '\n'); i < 0 {
			p.Right, input = dropCR(rem), nil
		} else {
			p.Right, input = dropCR(rem[:n+i]), rem[n+i+1:]
		}
		lno++
		s.count(&sum, p, v)
	}
}

// firstLineHead returns rem up to its first byte that is not blank. It tells
// whether the first line of rem is blank without scanning all of it.
func firstLineHead(rem []byte) []byte {
	i := skipBlank(rem, 0)
	if i < len(rem) && rem[i] != '\n' {
		return rem[:i+1]
	}
	return rem[:i]
}

type job struct {
	pair        Pair
	left, right *Buffer
	v           Verdict
	err         error
}

// parallel maps the pairs of src to verdicts on s.Workers goroutines. The
// error of the pair with the lowest index wins.
func (s *Sum) parallel(cmpr Comparer, src pairSource) (uint64, error) {
	jobs := make(chan *job, s.Workers)
	results := make(chan *job, s.Workers)
	stop := make(chan struct{})
	go func() {
		defer close(jobs)
		for src.Scan() {
			p := src.Pair()
			j := &job{left: s.pool.Get(), right: s.pool.Get()}
			p.Left, p.Right = j.left.Set(p.Left), j.right.Set(p.Right)
			j.pair = p
			select {
			case jobs <- j:
			case <-stop:
				s.pool.Put(j.left)
				s.pool.Put(j.right)
				return
			}
		}
	}()
	var wg sync.WaitGroup
	for range s.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				j.v, j.err = s.verdict(cmpr, j.pair)
				results <- j
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	var (
		sum    uint64
		perr   error
		errIdx int
	)
	for j := range results {
		switch {
		case j.err != nil:
			if perr == nil {
				close(stop)
			}
			if perr == nil || j.pair.Index < errIdx {
				perr, errIdx = j.err, j.pair.Index
			}
		case perr == nil:
			s.count(&sum, j.pair, j.v)
		}
		s.pool.Put(j.left)
		s.pool.Put(j.right)
	}
	if perr != nil {
		return 0, perr
	}
	if err := src.Err(); err != nil {
		return 0, err
	}
	return sum, nil
}
