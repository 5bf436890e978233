// Package config loads, normalizes, and validates tlkify configuration.
//
// Configuration is a TOML file resolved from an explicit --config path,
// ~/.config/tlkify/config.toml, or ./tlkify.toml, in that order. Missing
// files fall back to repository defaults so a build can run inside a
// conventionally laid out project without any configuration at all.
package config
