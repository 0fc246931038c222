// Package config loads, normalizes and validates the assetforge TOML
// configuration used by the CLI and the HTTP server.
package config
