// Package testsupport provides fixture helpers shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tlkify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input directories exist on disk; output directories are created by the
// build itself.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.BaseTablesDir = filepath.Join(base, "static_2da")
	cfgVal.Paths.OverrideTablesDir = filepath.Join(base, "input_2da")
	cfgVal.Paths.LabelsDir = filepath.Join(base, "input_json")
	cfgVal.Paths.OutputDirs = []string{filepath.Join(base, "output")}
	cfgVal.Paths.LogDir = ""

	for _, dir := range []string{cfgVal.Paths.BaseTablesDir, cfgVal.Paths.OverrideTablesDir, cfgVal.Paths.LabelsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSpellOffset sets the static spell id base on the test config.
func WithSpellOffset(offset int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TLK.SpellOffset = offset
	}
}

// WithReference sets the string-table seed path on the test config.
func WithReference(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TLK.Reference = path
	}
}

// WithOutputDirs replaces the output directory list on the test config.
func WithOutputDirs(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputDirs = dirs
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default converter binaries
// are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"nwn_erf", "nwn_tlk"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OverrideTablesDir)
}
