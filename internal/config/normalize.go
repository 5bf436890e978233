package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.BaseTablesDir, err = expandPath(c.Paths.BaseTablesDir); err != nil {
		return fmt.Errorf("paths.base_tables_dir: %w", err)
	}
	if c.Paths.OverrideTablesDir, err = expandPath(c.Paths.OverrideTablesDir); err != nil {
		return fmt.Errorf("paths.override_tables_dir: %w", err)
	}
	if c.Paths.LabelsDir, err = expandPath(c.Paths.LabelsDir); err != nil {
		return fmt.Errorf("paths.labels_dir: %w", err)
	}
	if len(c.Paths.OutputDirs) == 0 {
		c.Paths.OutputDirs = []string{defaultOutputDir}
	}
	for i, dir := range c.Paths.OutputDirs {
		if c.Paths.OutputDirs[i], err = expandPath(dir); err != nil {
			return fmt.Errorf("paths.output_dirs[%d]: %w", i, err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.TLK.Reference) != "" {
		if c.TLK.Reference, err = expandPath(c.TLK.Reference); err != nil {
			return fmt.Errorf("tlk.reference: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.NwnErf = strings.TrimSpace(c.Tools.NwnErf)
	if value, ok := os.LookupEnv("NWN_ERF"); ok && strings.TrimSpace(value) != "" {
		c.Tools.NwnErf = strings.TrimSpace(value)
	}
	if c.Tools.NwnErf == "" {
		c.Tools.NwnErf = defaultNwnErfBinary
	}

	c.Tools.NwnTlk = strings.TrimSpace(c.Tools.NwnTlk)
	if value, ok := os.LookupEnv("NWN_TLK"); ok && strings.TrimSpace(value) != "" {
		c.Tools.NwnTlk = strings.TrimSpace(value)
	}
	if c.Tools.NwnTlk == "" {
		c.Tools.NwnTlk = defaultNwnTlkBinary
	}
}

func (c *Config) normalizeOutput() {
	c.Output.TLKName = strings.TrimSpace(c.Output.TLKName)
	if c.Output.TLKName == "" {
		c.Output.TLKName = defaultTLKName
	}
	c.Output.HAKName = strings.TrimSpace(c.Output.HAKName)
	if c.Output.HAKName == "" {
		c.Output.HAKName = defaultHAKName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
