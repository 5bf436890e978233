package nwnerf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines ERF archive packing behaviour.
type Client interface {
	// Pack bundles the contents of dir into a HAK archive at outputPath.
	Pack(ctx context.Context, dir, outputPath string) error
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

// CLI wraps the nwn_erf command-line packer.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "nwn_erf"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Pack launches nwn_erf with the HAK header type forced.
func (c *CLI) Pack(ctx context.Context, dir, outputPath string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("input directory required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{"-e", "HAK", "-c", dir, "-f", outputPath}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("nwn_erf pack failed: %s: %w", msg, err)
		}
		return fmt.Errorf("nwn_erf pack failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
