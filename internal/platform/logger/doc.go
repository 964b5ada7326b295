// Package logger configures structured JSON logging for the service.
//
// It builds on the standard library's log/slog, adding level parsing from
// configuration and helpers for carrying a logger through request contexts.
package logger
