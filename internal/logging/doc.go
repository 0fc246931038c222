// Package logging builds the slog loggers used by the assetforge CLI and
// HTTP server: a compact console format for terminals and a JSON format for
// log collectors.
package logging
