package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tlkify/internal/services"
)

// Validate checks the configuration for problems that would make a build
// impossible. Every finding wraps services.ErrConfiguration.
func (c *Config) Validate() error {
	var problems []string

	if err := checkInputDir("paths.override_tables_dir", c.Paths.OverrideTablesDir); err != nil {
		problems = append(problems, err.Error())
	}
	if err := checkInputDir("paths.labels_dir", c.Paths.LabelsDir); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(c.Paths.BaseTablesDir) != "" {
		if info, err := os.Stat(c.Paths.BaseTablesDir); err == nil && !info.IsDir() {
			problems = append(problems, fmt.Sprintf("paths.base_tables_dir %q is not a directory", c.Paths.BaseTablesDir))
		}
	}

	if len(c.Paths.OutputDirs) == 0 {
		problems = append(problems, "paths.output_dirs must list at least one directory")
	}
	for i, dir := range c.Paths.OutputDirs {
		if strings.TrimSpace(dir) == "" {
			problems = append(problems, fmt.Sprintf("paths.output_dirs[%d] is empty", i))
		}
	}

	if c.Output.TLKName == "" {
		problems = append(problems, "output.tlk_name must not be empty")
	}
	if c.Output.HAKName == "" {
		problems = append(problems, "output.hak_name must not be empty")
	}

	if c.TLK.Language < 0 {
		problems = append(problems, "tlk.language must not be negative")
	}
	if c.TLK.SpellOffset < 0 {
		problems = append(problems, "tlk.spell_offset must not be negative")
	}
	if c.TLK.Reference != "" {
		switch strings.ToLower(filepath.Ext(c.TLK.Reference)) {
		case ".tlk", ".json":
			if _, err := os.Stat(c.TLK.Reference); err != nil {
				problems = append(problems, fmt.Sprintf("tlk.reference %q is not readable", c.TLK.Reference))
			}
		default:
			problems = append(problems, fmt.Sprintf("tlk.reference %q must end in .tlk or .json", c.TLK.Reference))
		}
	}

	if err := checkBinary("tools.nwn_erf", c.Tools.NwnErf); err != nil {
		problems = append(problems, err.Error())
	}
	if err := checkBinary("tools.nwn_tlk", c.Tools.NwnTlk); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q must be debug, info, warn, or error", c.Logging.Level))
	}

	if len(problems) > 0 {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			strings.Join(problems, "; "), nil)
	}
	return nil
}

func checkInputDir(field, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s %q does not exist", field, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q is not a directory", field, dir)
	}
	return nil
}

func checkBinary(field, binary string) error {
	if strings.TrimSpace(binary) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if filepath.IsAbs(binary) || strings.ContainsRune(binary, os.PathSeparator) {
		info, err := os.Stat(binary)
		if err != nil || info.IsDir() {
			return fmt.Errorf("%s %q is not an executable file", field, binary)
		}
		return nil
	}
	if _, err := exec.LookPath(binary); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s %q not found in PATH", field, binary)
		}
		return fmt.Errorf("%s %q: %v", field, binary, err)
	}
	return nil
}
