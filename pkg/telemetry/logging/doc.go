// Package logging configures structured logging for the wallet service.
//
// It wraps log/slog with level and format parsing so every component logs
// through the same handler. Components attach themselves with
// slog's With, typically as a "component" attribute.
package logging
