package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fractalqb/nlcmp"
)

// config holds the settings that can come from a file and from flags.
type config struct {
	BlockSize  int  `yaml:"block_size"`
	Workers    int  `yaml:"workers"`
	Strict     bool `yaml:"strict"`
	SinglePass bool `yaml:"single_pass"`
	Oracle     bool `yaml:"oracle"`
	MaxLine    int  `yaml:"max_line"`
}

func defaultConfig() config {
	return config{BlockSize: nlcmp.DefaultBlockSize, Workers: 1, Strict: true}
}

func (cfg *config) check() error {
	switch {
	case cfg.BlockSize < 1:
		return fmt.Errorf("block size %d < 1", cfg.BlockSize)
	case cfg.Workers < 1:
		return fmt.Errorf("workers %d < 1", cfg.Workers)
	case cfg.MaxLine < 0:
		return fmt.Errorf("max line %d < 0", cfg.MaxLine)
	}
	return nil
}

// readConfig decodes a YAML config over cfg. Unknown keys are an error.
func readConfig(r io.Reader, cfg *config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// loadConfig reads the config file if one is given. Flags set on the command
// line take precedence over the file.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if rootCmd.cfgFile != "" {
		flags := rootCmd.config
		f, err := os.Open(rootCmd.cfgFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err = readConfig(f, &rootCmd.config); err != nil {
			return fmt.Errorf("config %s: %w", rootCmd.cfgFile, err)
		}
		merge(cmd, &rootCmd.config, flags)
	}
	return rootCmd.config.check()
}

func merge(cmd *cobra.Command, cfg *config, flags config) {
	set := cmd.Flags().Changed
	if set("block-size") {
		cfg.BlockSize = flags.BlockSize
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("strict") {
		cfg.Strict = flags.Strict
	}
	if set("single-pass") {
		cfg.SinglePass = flags.SinglePass
	}
	if set("oracle") {
		cfg.Oracle = flags.Oracle
	}
	if set("max-line") {
		cfg.MaxLine = flags.MaxLine
	}
}
