//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: bassosimone-nop/slogger.go (same [SLogger] abstraction,
// extended with Warn/Error for protocol-anomaly logging this domain needs).
//

package dockrpc

// SLogger abstracts the [*slog.Logger] behavior used by this package.
//
// By using an abstraction we allow for unit testing and alternative
// implementations. The [*slog.Logger] type satisfies this interface.
//
// This package uses four log levels:
//   - Info for stream lifecycle events (stream connected, stream accepted)
//   - Debug for per-connection I/O events (connect retry, read/write
//     error, stream closed, response write failure)
//   - Warn for recoverable protocol anomalies (undeclared event emitted,
//     handshake received while Active, unknown envelope type while Active)
//   - Error for failures that abort an operation (opening the stream pair,
//     encoding a response or an event)
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultSLogger returns the default [SLogger] to use.
//
// The default is a no-op logger that discards all output. This follows the
// library convention of not writing to stdout/stderr unless explicitly
// configured. Use a custom [*slog.Logger] for emitting logs.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

// discardSLogger is a no-op [SLogger] that discards all log messages.
type discardSLogger struct{}

var _ SLogger = discardSLogger{}

// Debug implements [SLogger].
func (discardSLogger) Debug(msg string, args ...any) {
	// nothing
}

// Info implements [SLogger].
func (discardSLogger) Info(msg string, args ...any) {
	// nothing
}

// Warn implements [SLogger].
func (discardSLogger) Warn(msg string, args ...any) {
	// nothing
}

// Error implements [SLogger].
func (discardSLogger) Error(msg string, args ...any) {
	// nothing
}
