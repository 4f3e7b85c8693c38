package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	sumCmd.RunE = sumFiles
	rootCmd.AddCommand(&sumCmd)
}

var sumCmd = cobra.Command{
	Use:   "sum [file...]",
	Short: "Print the sum of the indices of ordered pairs",
	Long: `Print the sum of the indices of all pairs whose left line is less than
the right line. Without file arguments the pairs are read from stdin. With more
than one file each sum is labeled with its file name.`,
}

func sumFiles(cmd *cobra.Command, files []string) error {
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		n, err := newSum().Reader(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		fmt.Fprintln(out, n)
		return nil
	}
	for _, f := range files {
		n, err := sumFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		if len(files) > 1 {
			fmt.Fprintf(out, "%s: %d\n", f, n)
		} else {
			fmt.Fprintln(out, n)
		}
	}
	return nil
}

func sumFile(name string) (uint64, error) {
	if rootCmd.SinglePass {
		// Single pass needs the whole input in memory
		input, err := os.ReadFile(name)
		if err != nil {
			return 0, err
		}
		return newSum().Bytes(input)
	}
	r, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return newSum().Reader(r)
}
