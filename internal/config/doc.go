// Package config loads, normalizes, and validates the TOML configuration
// shared by every karasub command.
package config
