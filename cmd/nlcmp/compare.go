package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/fractalqb/nlcmp"
	"github.com/fractalqb/nlcmp/oracle"
)

func init() {
	compareCmd.RunE = compareLines
	compareCmd.Flags().BoolVar(&compareCmd.check, "check", false,
		"Cross-check the verdict with the tree comparator")
	rootCmd.AddCommand(&compareCmd.Command)
}

var compareCmd = struct {
	cobra.Command
	check bool
}{
	Command: cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Print the order of two lines as <, = or >",
		Args:  cobra.ExactArgs(2),
	},
}

func compareLines(cmd *cobra.Command, args []string) error {
	left, right := []byte(args[0]), []byte(args[1])
	if rootCmd.Strict {
		if err := nlcmp.Validate(left); err != nil {
			return err
		}
		if err := nlcmp.Validate(right); err != nil {
			if se, ok := err.(*nlcmp.SyntaxError); ok {
				se.Side = nlcmp.Right
			}
			return err
		}
	}
	v, err := comparer().Compare(left, right)
	if err != nil {
		return err
	}
	if compareCmd.check {
		ov, err := oracle.Comparer{}.Compare(left, right)
		if err != nil {
			return fmt.Errorf("oracle: %w", err)
		}
		if ov != v {
			return fmt.Errorf("verdict %s disagrees with oracle verdict %s", v, ov)
		}
		if rootCmd.verbose {
			log.Printf("oracle agrees: %s", ov)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%c\n", v.Symbol())
	return nil
}
