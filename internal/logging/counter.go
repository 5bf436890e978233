package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Counter is a pass-through handler that counts warning and error records
// so a build can report them in its summary.
type Counter struct {
	next     slog.Handler
	warnings *atomic.Int64
	errors   *atomic.Int64
}

// NewCounter wraps next with record counting. Wrapped loggers derived via
// With and WithGroup share the same counters.
func NewCounter(next slog.Handler) *Counter {
	return &Counter{next: next, warnings: new(atomic.Int64), errors: new(atomic.Int64)}
}

// Warnings reports the number of warning records handled so far.
func (c *Counter) Warnings() int { return int(c.warnings.Load()) }

// Errors reports the number of error records handled so far.
func (c *Counter) Errors() int { return int(c.errors.Load()) }

func (c *Counter) Enabled(ctx context.Context, level slog.Level) bool {
	return c.next.Enabled(ctx, level)
}

func (c *Counter) Handle(ctx context.Context, record slog.Record) error {
	switch {
	case record.Level >= slog.LevelError:
		c.errors.Add(1)
	case record.Level >= slog.LevelWarn:
		c.warnings.Add(1)
	}
	return c.next.Handle(ctx, record)
}

func (c *Counter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Counter{next: c.next.WithAttrs(attrs), warnings: c.warnings, errors: c.errors}
}

func (c *Counter) WithGroup(name string) slog.Handler {
	return &Counter{next: c.next.WithGroup(name), warnings: c.warnings, errors: c.errors}
}
