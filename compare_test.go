package nlcmp_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"

	"github.com/fractalqb/nlcmp"
	"github.com/fractalqb/nlcmp/oracle"
	"github.com/fractalqb/nlcmp/pairtest"
)

func ExampleComparator() {
	var cmpr nlcmp.Comparator
	for _, p := range [][2]string{
		{"[1,1,3,1,1]", "[1,1,5,1,1]"},
		{"[9]", "[[8,7,6]]"},
		{"[[]]", "[[]]"},
	} {
		v, err := cmpr.CompareStrings(p[0], p[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s %c %s\n", p[0], v.Symbol(), p[1])
	}
	// Output:
	// [1,1,3,1,1] < [1,1,5,1,1]
	// [9] > [[8,7,6]]
	// [[]] = [[]]
}

var orderCases = []struct {
	left, right string
	want        nlcmp.Verdict
}{
	{"[1,1,3,1,1]", "[1,1,5,1,1]", nlcmp.Less},
	{"[[1],[2,3,4]]", "[[1],4]", nlcmp.Less},
	{"[9]", "[[8,7,6]]", nlcmp.Greater},
	{"[[4,4],4,4]", "[[4,4],4,4,4]", nlcmp.Less},
	{"[7,7,7,7]", "[7,7,7]", nlcmp.Greater},
	{"[]", "[3]", nlcmp.Less},
	{"[[[]]]", "[[]]", nlcmp.Greater},
	{"[1,[2,[3,[4,[5,6,7]]]],8,9]", "[1,[2,[3,[4,[5,6,0]]]],8,9]", nlcmp.Greater},
	{"[[]]", "[[]]", nlcmp.Equal},
	{"[]", "[]", nlcmp.Equal},
	{"9", "[[8,7,6]]", nlcmp.Greater},
	{"5", "[5]", nlcmp.Equal},
	{"[[5]]", "5", nlcmp.Equal},
	{"1", "12", nlcmp.Less},
	{"[1,2]", "[12]", nlcmp.Less},
	{"[10]", "[9]", nlcmp.Less},
	{"[[1,2]]", "[1]", nlcmp.Greater},
	{"[1]", "[[1,2]]", nlcmp.Less},
	{"[[[],5]]", "[3]", nlcmp.Less},
	{"[3]", "[[[],5]]", nlcmp.Greater},
	{"[[[1,2],3]]", "[1]", nlcmp.Greater},
	{"[[1]]", "[1]", nlcmp.Equal},
	{"[[1],2]", "[[1],[2]]", nlcmp.Equal},
	{"[4,[5]]", "[4,[[5],6]]", nlcmp.Less},
	{"[3,[4,[5]]]", "[3,4]", nlcmp.Greater},
	{"[[[6]]]", "[[6,0]]", nlcmp.Less},
	{"[[],[]]", "[[]]", nlcmp.Greater},
	{"[1, 2]", "[1,2]", nlcmp.Equal},
	{" [1]", "[1]", nlcmp.Equal},
	{"[1,2] ", "[1,2]", nlcmp.Equal},
	{"[1,[2 ]]", "[1,[2]]", nlcmp.Equal},
	{"[1,[2 ],3]", "[1,[2],4]", nlcmp.Less},
}

func TestComparator_Compare(t *testing.T) {
	for _, block := range []int{0, 1, 2, 16, 128} {
		cmpr := nlcmp.Comparator{BlockSize: block}
		t.Run(fmt.Sprintf("block %d", block), func(t *testing.T) {
			for _, c := range orderCases {
				v, err := pairtest.AgreeErr(cmpr, []byte(c.left), []byte(c.right))
				if err != nil {
					t.Errorf("%s vs. %s: %s", c.left, c.right, err)
					continue
				}
				if v != c.want {
					t.Errorf("%s vs. %s: %s, want %s", c.left, c.right, v, c.want)
				}
				rv, err := cmpr.CompareStrings(c.right, c.left)
				if err != nil {
					t.Errorf("%s vs. %s: %s", c.right, c.left, err)
				} else if rv != v.Reverse() {
					t.Errorf("%s vs. %s: %s, want %s", c.right, c.left, rv, v.Reverse())
				}
			}
		})
	}
}

func TestComparator_reflexive(t *testing.T) {
	for _, c := range orderCases {
		for _, line := range []string{c.left, c.right} {
			if v := pairtest.Agree(t, line, line); v != nlcmp.Equal {
				t.Errorf("%s vs. itself: %s", line, v)
			}
		}
	}
}

func TestComparator_errors(t *testing.T) {
	check := func(t *testing.T, left, right string, side nlcmp.Side, want error) {
		t.Helper()
		_, err := nlcmp.Comparator{}.CompareStrings(left, right)
		testerr.Should(err).Be(t, want)
		var serr *nlcmp.SyntaxError
		if errors.As(err, &serr) && serr.Side != side {
			t.Errorf("%s vs. %s: error on %s side, want %s", left, right, serr.Side, side)
		}
	}
	t.Run("comma", func(t *testing.T) {
		check(t, "[,1]", "[[1]]", nlcmp.Left, nlcmp.ErrComma)
		check(t, "[[1]]", "[,1]", nlcmp.Right, nlcmp.ErrComma)
		check(t, "[[,1]]", "[1]", nlcmp.Left, nlcmp.ErrComma)
		check(t, "[1]", "[[,1]]", nlcmp.Right, nlcmp.ErrComma)
	})
	t.Run("invalid character", func(t *testing.T) {
		check(t, "[1,a]", "[1,2]", nlcmp.Left, nlcmp.ErrSyntax)
		check(t, "[1,2]", "[1,x]", nlcmp.Right, nlcmp.ErrSyntax)
		check(t, "[[1]x]", "[1]", nlcmp.Left, nlcmp.ErrSyntax)
	})
	t.Run("unbalanced", func(t *testing.T) {
		check(t, "[[1", "[[1", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "[1]]", "[1]]", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "[1]", "[[1", nlcmp.Right, nlcmp.ErrUnbalanced)
		check(t, "[[1", "[1]", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "[1,[2]", "[1,[2]", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "]1[", "]1[", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "[]][", "[]][", nlcmp.Left, nlcmp.ErrUnbalanced)
		check(t, "[1]][2", "[1]][3", nlcmp.Left, nlcmp.ErrUnbalanced)
	})
	t.Run("blank in number", func(t *testing.T) {
		check(t, "[1 0]", "[10]", nlcmp.Left, nlcmp.ErrSyntax)
		check(t, "[10]", "[1 0]", nlcmp.Right, nlcmp.ErrSyntax)
		check(t, "[1 0]", "[1 2]", nlcmp.Left, nlcmp.ErrSyntax)
		check(t, "[12 3]", "[12,3]", nlcmp.Left, nlcmp.ErrSyntax)
		_, err := nlcmp.Comparator{}.CompareStrings("[4,1 \t0]", "[4,10]")
		var serr *nlcmp.SyntaxError
		if !errors.As(err, &serr) || serr.Offset != 4 {
			t.Errorf("unexpected error %v", err)
		}
	})
	t.Run("unbalanced prefix", func(t *testing.T) {
		var sum nlcmp.Sum
		sum.Lax = true
		_, err := sum.String("]1[\n]1[")
		testerr.Should(err).Be(t, nlcmp.ErrUnbalanced)
	})
}

func TestComparator_CompareFirstLine(t *testing.T) {
	check := func(t *testing.T, left, rem string, want nlcmp.Verdict, consumed int) {
		t.Helper()
		v, n, err := nlcmp.Comparator{}.CompareFirstLine([]byte(left), []byte(rem))
		testerr.Shall(err).BeNil(t)
		if v != want || n != consumed {
			t.Errorf("%s vs. %q: %s after %d bytes, want %s after %d",
				left, rem, v, n, want, consumed)
		}
	}
	check(t, "[1,2]", "[1,3]\n[9]\n", nlcmp.Less, 3)
	check(t, "[1,2]", "[1,2]\n[1,2]", nlcmp.Equal, 5)
	check(t, "[1,2]", "[1,2]\r\n[1,2]", nlcmp.Equal, 6)
	check(t, "[1]", "[1,2]\nxxx", nlcmp.Less, 2)
	check(t, "[[1],2]", "[1,2]\n", nlcmp.Equal, 5)
	check(t, "[1,2]", "[1]\n[1,2]", nlcmp.Greater, 2)
	t.Run("unbalanced right", func(t *testing.T) {
		_, _, err := nlcmp.Comparator{}.CompareFirstLine([]byte("[1]"), []byte("[[1\n]]"))
		testerr.Should(err).Be(t, nlcmp.ErrUnbalanced)
	})
}

func randElement(rnd *rand.Rand, depth int) oracle.Element {
	if depth == 0 || rnd.Intn(4) == 0 {
		return oracle.Number(strconv.Itoa(rnd.Intn(11)))
	}
	l := make(oracle.List, rnd.Intn(5))
	for i := range l {
		l[i] = randElement(rnd, depth-1)
	}
	return l
}

// mutate returns a copy of e with one random local change.
func mutate(rnd *rand.Rand, e oracle.Element) oracle.Element {
	switch e := e.(type) {
	case oracle.Number:
		switch rnd.Intn(3) {
		case 0:
			return oracle.List{e}
		case 1:
			return oracle.Number(strconv.Itoa(rnd.Intn(11)))
		}
		return oracle.List{}
	case oracle.List:
		l := append(oracle.List(nil), e...)
		if len(l) == 0 || rnd.Intn(4) == 0 {
			switch {
			case rnd.Intn(2) == 0:
				return append(l, randElement(rnd, 2))
			case len(l) == 1:
				return l[0]
			case len(l) > 0:
				return l[:len(l)-1]
			}
			return oracle.List{l}
		}
		i := rnd.Intn(len(l))
		l[i] = mutate(rnd, l[i])
		return l
	}
	panic("unknown element")
}

func TestComparator_oracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cmprs := []nlcmp.Comparator{{BlockSize: 1}, {BlockSize: 16}, {BlockSize: 128}}
	for i := 0; i < 5000; i++ {
		a := randElement(rnd, 5)
		b := a
		if i%5 == 0 {
			b = randElement(rnd, 5)
		} else {
			for n := rnd.Intn(3) + 1; n > 0; n-- {
				b = mutate(rnd, b)
			}
		}
		left, right := []byte(oracle.Format(a)), []byte(oracle.Format(b))
		want := oracle.Compare(a, b)
		for _, cmpr := range cmprs {
			got, err := cmpr.Compare(left, right)
			if err != nil {
				t.Fatalf("%s vs. %s: %s", left, right, err)
			}
			if got != want {
				t.Fatalf("block %d: %s vs. %s: %s, oracle says %s",
					cmpr.BlockSize, left, right, got, want)
			}
			if rv, _ := cmpr.Compare(right, left); rv != want.Reverse() {
				t.Fatalf("block %d: %s vs. %s: %s, want %s",
					cmpr.BlockSize, right, left, rv, want.Reverse())
			}
		}
		if v, err := (nlcmp.Comparator{}).Compare(left, left); err != nil || v != nlcmp.Equal {
			t.Fatalf("%s vs. itself: %s %v", left, v, err)
		}
	}
}

func BenchmarkComparator(b *testing.B) {
	pairs := [][2][]byte{
		{[]byte("[1,[2,[3,[4,[5,6,7]]]],8,9]"), []byte("[1,[2,[3,[4,[5,6,0]]]],8,9]")},
		{[]byte("[[1],[2,3,4]]"), []byte("[[1],4]")},
	}
	for _, block := range []int{16, 128} {
		cmpr := nlcmp.Comparator{BlockSize: block}
		b.Run(fmt.Sprintf("Block%d", block), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				for _, p := range pairs {
					cmpr.Compare(p[0], p[1])
				}
			}
		})
	}
	b.Run("Oracle", func(b *testing.B) {
		var cmpr oracle.Comparer
		for i := 0; i < b.N; i++ {
			for _, p := range pairs {
				cmpr.Compare(p[0], p[1])
			}
		}
	})
}
