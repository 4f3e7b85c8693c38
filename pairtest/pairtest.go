// Package pairtest checks nlcmp comparators in Go tests against the tree
// oracle and against recorded verdicts.
//
// Verdict files hold one symbol per pair of the tested input:
//
//	<
//	=
//	>
//
// Example reads the verdicts from testdata/TestSample.verdicts:
//
//	func TestSample(t *testing.T) {
//		pairtest.Fatal(t, "", strings.NewReader(nlcmp.Sample))
//	}
package pairtest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/nlcmp"
	"github.com/fractalqb/nlcmp/oracle"
)

// When this environment variable is set to a regexp and the name of the current
// test matches, calls to Error or Fatal will record the oracle's verdicts as
// new reference data instead of comparing them. E.g.
//
//	PAIRTEST_RECORD=TestRecording go test .
const RecordEnv = "PAIRTEST_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go help
// test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, pairs io.Reader) error {
	return defaultConfig.Error(t, hint, pairs)
}

func Fatal(t *testing.T, hint string, pairs io.Reader) {
	defaultConfig.Fatal(t, hint, pairs)
}

func Record(t *testing.T, hint string, pairs io.Reader) {
	defaultConfig.Record(t, hint, pairs)
}

type Repo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = ".verdicts"
	NoSuffix  = "\x00"
)

func (rr Repo) Filename(t *testing.T, hint string) string {
	suffix := rr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	VerdictFileName func(t *testing.T, hint string) string
	// Comparer under test, nil means a zero nlcmp.Comparator
	Comparer        nlcmp.Comparer
	RecordOverwrite bool
}

var defaultConfig = Config{
	VerdictFileName: Repo{Dir: GoTestdataDir}.Filename,
}

func (cfg Config) Error(t *testing.T, hint string, pairs io.Reader) error {
	if recordTest(t) {
		cfg.Record(t, hint, pairs)
		return nil
	}
	err := cfg.compare(t, hint, pairs)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, pairs io.Reader) {
	if recordTest(t) {
		cfg.Record(t, hint, pairs)
		return
	}
	if err := cfg.compare(t, hint, pairs); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("pairtest: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg *Config) comparer() nlcmp.Comparer {
	if cfg.Comparer == nil {
		return nlcmp.Comparator{}
	}
	return cfg.Comparer
}

func (cfg *Config) compare(t *testing.T, hint string, pairs io.Reader) error {
	file := cfg.VerdictFileName(t, hint)
	want, err := ReadVerdicts(file)
	if os.IsNotExist(err) {
		t.Logf("to record a verdict file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("verdict file %s does not exist", file)
	} else if err != nil {
		return err
	}
	cmpr := cfg.comparer()
	rd := nlcmp.NewPairReader(pairs, 0)
	mismatches := 0
	for rd.Scan() {
		p := rd.Pair()
		got, err := AgreeErr(cmpr, p.Left, p.Right)
		if err != nil {
			t.Errorf("pair %d (line %d): %s", p.Index, p.Line, err)
			mismatches++
			continue
		}
		switch {
		case p.Index > len(want):
			t.Errorf("pair %d (line %d): no recorded verdict", p.Index, p.Line)
			mismatches++
		case want[p.Index-1] != got:
			t.Errorf("pair %d (line %d): verdict %s, recorded %s\n  %s\n  %s",
				p.Index, p.Line, got, want[p.Index-1], p.Left, p.Right)
			mismatches++
		}
	}
	if err := rd.Err(); err != nil {
		return err
	}
	if n := rd.Pair().Index; n < len(want) {
		return fmt.Errorf("%d verdicts recorded for %d pairs", len(want), n)
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d pairs mismatch %s", mismatches, rd.Pair().Index, file)
	}
	return nil
}

func (cfg Config) Record(t *testing.T, hint string, pairs io.Reader) {
	file := cfg.VerdictFileName(t, hint)
	if _, err := os.Stat(file); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("pairtest: verdict file '%s' already exists", file)
	}
	var buf bytes.Buffer
	rd := nlcmp.NewPairReader(pairs, 0)
	for rd.Scan() {
		p := rd.Pair()
		v, err := oracle.Comparer{}.Compare(p.Left, p.Right)
		if err != nil {
			t.Fatalf("pair %d (line %d): %s", p.Index, p.Line, err)
		}
		fmt.Fprintf(&buf, "%c\n", v.Symbol())
	}
	if err := rd.Err(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0666); err != nil {
		t.Fatal(err)
	}
	t.Errorf("pairtest recorder wrote: %s", file)
}

// ReadVerdicts reads a verdict file. Blank lines and lines starting with '#'
// are skipped.
func ReadVerdicts(file string) ([]nlcmp.Verdict, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var res []nlcmp.Verdict
	scn := bufio.NewScanner(r)
	for lno := 1; scn.Scan(); lno++ {
		l := strings.TrimSpace(scn.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		v, err := nlcmp.ParseVerdict(l)
		if err != nil {
			return nil, fmt.Errorf("%s:%d:%w", file, lno, err)
		}
		res = append(res, v)
	}
	return res, scn.Err()
}

// AgreeErr compares a pair with cmpr and with the oracle. It fails if either
// of them reports an error or if the verdicts differ.
func AgreeErr(cmpr nlcmp.Comparer, left, right []byte) (nlcmp.Verdict, error) {
	want, oerr := oracle.Comparer{}.Compare(left, right)
	got, err := cmpr.Compare(left, right)
	switch {
	case oerr != nil:
		return nlcmp.Equal, fmt.Errorf("oracle: %w", oerr)
	case err != nil:
		return nlcmp.Equal, err
	case got != want:
		return got, fmt.Errorf("verdict %s, oracle says %s", got, want)
	}
	return got, nil
}

// Agree checks that the streaming comparator and the oracle agree on a pair
// and returns the verdict.
func Agree(t testing.TB, left, right string) nlcmp.Verdict {
	t.Helper()
	v, err := AgreeErr(nlcmp.Comparator{}, []byte(left), []byte(right))
	if err != nil {
		t.Errorf("%s vs. %s: %s", left, right, err)
	}
	return v
}
