// A command line tool to order and sum nested-list line pairs
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/fractalqb/nlcmp"
	"github.com/fractalqb/nlcmp/oracle"
)

const longUsage = `A command line tool to order nested-list line pairs

INPUT FORMAT

Pairs of lines separated by blank lines. Each line is one element:

   Element := List | Number
   List    := '[' (Element (',' Element)*)? ']'
   Number  := [0-9]+

The sum of a run is the sum of the 1-based indices of all pairs whose left
line is less than its right line.`

var rootCmd = struct {
	cobra.Command
	cfgFile string
	verbose bool
	config
}{
	Command: cobra.Command{
		Use:           "nlcmp",
		Short:         "Order and sum nested-list line pairs",
		Long:          longUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
	},
	config: defaultConfig(),
}

func init() {
	rootCmd.PersistentPreRunE = loadConfig
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootCmd.cfgFile, "config", "c", "",
		"Read settings from YAML file")
	flags.IntVarP(&rootCmd.BlockSize, "block-size", "b", rootCmd.BlockSize,
		"Set block size of the common prefix scan")
	flags.IntVarP(&rootCmd.Workers, "workers", "w", rootCmd.Workers,
		"Compare pairs on that many goroutines")
	flags.BoolVar(&rootCmd.Strict, "strict", rootCmd.Strict,
		"Validate every line before comparing, --strict=false orders malformed lines as far as they are read")
	flags.BoolVar(&rootCmd.SinglePass, "single-pass", rootCmd.SinglePass,
		"Find the end of right lines while comparing")
	flags.BoolVar(&rootCmd.Oracle, "oracle", rootCmd.Oracle,
		"Use the tree comparator instead of the streaming one")
	flags.IntVar(&rootCmd.MaxLine, "max-line", rootCmd.MaxLine,
		"Set maximum line length for streamed input")
	flags.BoolVarP(&rootCmd.verbose, "verbose", "v", false,
		"Log the verdict of every pair")
}

func comparer() nlcmp.Comparer {
	if rootCmd.Oracle {
		return oracle.Comparer{}
	}
	return nlcmp.Comparator{BlockSize: rootCmd.BlockSize}
}

func newSum() *nlcmp.Sum {
	s := &nlcmp.Sum{
		Comparer:   comparer(),
		SinglePass: rootCmd.SinglePass,
		Lax:        !rootCmd.Strict,
		Workers:    rootCmd.Workers,
		MaxLine:    rootCmd.MaxLine,
	}
	if rootCmd.verbose {
		s.OnPair = func(p nlcmp.Pair, v nlcmp.Verdict) {
			log.Printf("pair %d (line %d): %s %c %s", p.Index, p.Line, p.Left, v.Symbol(), p.Right)
		}
	}
	return s
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("nlcmp: ")
	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
