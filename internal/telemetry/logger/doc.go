// Package logger provides structured logging for the zkadmin tooling.
//
// This package configures log/slog for CLI use:
//
//   - logger.go: handler construction and dynamic level control
//   - redact.go: credential redaction
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level adjustment
//   - Automatic masking of admin keys and authorization values
package logger
