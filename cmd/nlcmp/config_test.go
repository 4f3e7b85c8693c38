package main

import (
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func TestReadConfig(t *testing.T) {
	cfg := defaultConfig()
	testerr.Shall(readConfig(strings.NewReader(`
block_size: 16
workers: 4
single_pass: true
`), &cfg)).BeNil(t)
	want := config{BlockSize: 16, Workers: 4, Strict: true, SinglePass: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	testerr.Shall(cfg.check()).BeNil(t)
}

func TestReadConfig_lax(t *testing.T) {
	cfg := defaultConfig()
	testerr.Shall(readConfig(strings.NewReader("strict: false\n"), &cfg)).BeNil(t)
	if cfg.Strict {
		t.Error("strict: false did not switch off validation")
	}
}

func TestReadConfig_empty(t *testing.T) {
	cfg := defaultConfig()
	testerr.Shall(readConfig(strings.NewReader(""), &cfg)).BeNil(t)
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if !cfg.Strict {
		t.Error("validation is off by default")
	}
}

func TestReadConfig_unknown(t *testing.T) {
	cfg := defaultConfig()
	if err := readConfig(strings.NewReader("blocksize: 16\n"), &cfg); err == nil {
		t.Error("expect error for unknown key")
	}
}

func TestConfig_check(t *testing.T) {
	for _, cfg := range []config{
		{BlockSize: 0, Workers: 1},
		{BlockSize: 16, Workers: 0},
		{BlockSize: 16, Workers: 1, MaxLine: -1},
	} {
		if err := cfg.check(); err == nil {
			t.Errorf("expect error for %+v", cfg)
		}
	}
}

func TestNewSum(t *testing.T) {
	if s := newSum(); s.Lax {
		t.Error("default sum does not validate")
	}
	testerr.ShallRet(newSum().String(`[1,2]
[1,3]`)).BeNil(t)
	if _, err := newSum().String("[1,]\n[1,2]"); err == nil {
		t.Error("default sum accepts malformed line")
	}
}
