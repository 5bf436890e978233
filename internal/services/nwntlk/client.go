package nwntlk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines TLK container conversion behaviour.
type Client interface {
	// Encode converts a JSON string-table document into a binary TLK file.
	Encode(ctx context.Context, jsonPath, tlkPath string) error
	// Decode converts a binary TLK file into a JSON string-table document.
	Decode(ctx context.Context, tlkPath, jsonPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the nwn_tlk command-line converter.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "nwn_tlk"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Encode launches nwn_tlk to write tlkPath from jsonPath.
func (c *CLI) Encode(ctx context.Context, jsonPath, tlkPath string) error {
	return c.convert(ctx, jsonPath, tlkPath)
}

// Decode launches nwn_tlk to write jsonPath from tlkPath.
func (c *CLI) Decode(ctx context.Context, tlkPath, jsonPath string) error {
	return c.convert(ctx, tlkPath, jsonPath)
}

func (c *CLI) convert(ctx context.Context, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{"-i", inputPath, "-o", outputPath}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("nwn_tlk convert failed: %s: %w", msg, err)
		}
		return fmt.Errorf("nwn_tlk convert failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
