// Package services defines shared utilities consumed by the build pipeline
// and the external converter integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into the build's taxonomy (configuration, parse, contract violation,
//     external tool).
//   - Thin abstractions that make command execution against the external
//     nwn_tlk and nwn_erf converters testable.
//
// Use these helpers when wiring new pipeline logic so error handling stays
// uniform across the build.
package services
