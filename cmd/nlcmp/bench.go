package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fractalqb/nlcmp"
	"github.com/fractalqb/nlcmp/oracle"
)

func init() {
	benchCmd.RunE = runBench
	benchCmd.Flags().IntVarP(&benchCmd.rounds, "rounds", "n", benchCmd.rounds,
		"Repeat each timed run that many times")
	rootCmd.AddCommand(&benchCmd.Command)
}

var benchCmd = struct {
	cobra.Command
	rounds int
}{
	Command: cobra.Command{
		Use:   "bench [file]",
		Short: "Time all comparators on an input and check they agree",
		Long: `Time all comparators on an input and check they agree. Without a file
the canonical sample and the sample repeated 1000 times are used and their sums
are checked against the known results.`,
		Args: cobra.MaximumNArgs(1),
	},
	rounds: 10,
}

type benchInput struct {
	name  string
	data  []byte
	want  uint64
	known bool
}

type benchRun struct {
	name string
	sum  *nlcmp.Sum
}

func benchRuns() []benchRun {
	return []benchRun{
		{"block 16", &nlcmp.Sum{Comparer: nlcmp.Comparator{BlockSize: 16}}},
		{"block 128", &nlcmp.Sum{Comparer: nlcmp.Comparator{BlockSize: 128}}},
		{"single pass", &nlcmp.Sum{SinglePass: true, Comparer: nlcmp.Comparator{BlockSize: rootCmd.BlockSize}}},
		{"parallel", &nlcmp.Sum{Workers: max(rootCmd.Workers, 2)}},
		{"oracle", &nlcmp.Sum{Comparer: oracle.Comparer{}}},
		{"lax", &nlcmp.Sum{Lax: true}},
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	var inputs []benchInput
	if len(args) == 0 {
		inputs = []benchInput{
			{name: "sample", data: []byte(nlcmp.Sample), want: 13, known: true},
			{name: "sample x1000", data: []byte(nlcmp.RepeatSample(1000)), want: 15997000, known: true},
		}
	} else {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		inputs = []benchInput{{name: args[0], data: data}}
	}
	out := cmd.OutOrStdout()
	for _, in := range inputs {
		if err := benchmark(out, in, benchCmd.rounds); err != nil {
			return err
		}
	}
	return nil
}

func benchmark(out io.Writer, in benchInput, rounds int) error {
	rounds = max(rounds, 1)
	fmt.Fprintf(out, "%s (%d bytes):\n", in.name, len(in.data))
	for _, run := range benchRuns() {
		var sum uint64
		start := time.Now()
		for i := 0; i < rounds; i++ {
			n, err := run.sum.Bytes(in.data)
			if err != nil {
				return fmt.Errorf("%s with %s: %w", in.name, run.name, err)
			}
			sum = n
		}
		dt := time.Since(start) / time.Duration(rounds)
		if !in.known {
			in.want, in.known = sum, true
		} else if sum != in.want {
			return fmt.Errorf("%s with %s: sum %d, want %d", in.name, run.name, sum, in.want)
		}
		fmt.Fprintf(out, "  %-12s %12s %d\n", run.name, dt, sum)
	}
	return nil
}
