package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output directory configuration.
type Paths struct {
	// BaseTablesDir holds 2DA tables without override labels; they pass
	// through the build with only format normalization.
	BaseTablesDir string `toml:"base_tables_dir"`
	// OverrideTablesDir holds the 2DA tables that receive merged labels.
	OverrideTablesDir string `toml:"override_tables_dir"`
	// LabelsDir holds the JSON override label files.
	LabelsDir string `toml:"labels_dir"`
	// OutputDirs receives the built artifacts; the first entry is the
	// primary output, the rest are fan-out copies.
	OutputDirs []string `toml:"output_dirs"`
	LogDir     string   `toml:"log_dir"`
}

// Output names the produced artifacts.
type Output struct {
	TLKName string `toml:"tlk_name"`
	HAKName string `toml:"hak_name"`
}

// TLK contains string-table build settings.
type TLK struct {
	// Language is the language id written into the serialized table.
	Language int `toml:"language"`
	// Reference optionally seeds the string table from a prior .tlk file
	// or .json document.
	Reference string `toml:"reference"`
	// SpellOffset is the base id for static spell name/description
	// entries; 0 disables static assignment.
	SpellOffset int `toml:"spell_offset"`
}

// Tools locates the external converter binaries.
type Tools struct {
	NwnErf string `toml:"nwn_erf"`
	NwnTlk string `toml:"nwn_tlk"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for a tlkify build.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Output  Output  `toml:"output"`
	TLK     TLK     `toml:"tlk"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tlkify/config.toml")
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tlkify.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// PrimaryOutputDir returns the first configured output directory.
func (c *Config) PrimaryOutputDir() string {
	if len(c.Paths.OutputDirs) == 0 {
		return ""
	}
	return c.Paths.OutputDirs[0]
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := make([]string, 0, len(c.Paths.OutputDirs)+1)
	for _, dir := range c.Paths.OutputDirs {
		dirs = append(dirs, filepath.Join(dir, "tlk"), filepath.Join(dir, "hak"))
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
