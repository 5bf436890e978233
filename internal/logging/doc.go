// Package logging builds slog loggers for the CLI, with a single-line
// console format, a JSON format, and optional log-file output. The Counter
// handler feeds warning and error totals into the build summary.
package logging
