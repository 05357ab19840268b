// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

var (
	globalMu     sync.Mutex
	globalLogger *slog.Logger
)

// NewLogger creates a new structured logger that writes human-readable, timestamped
// console output. The dryer core runs on constrained hardware with no network egress,
// so logging is local-only: a zerolog console writer wrapped behind the slog facade
// used throughout the rest of the core.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).
		With().
		Timestamp().
		Logger()

	return slog.New(slogzerolog.Option{Level: level, Logger: &zeroLogger}.NewZerologHandler())
}

// NewDefaultLogger creates a logger writing to stderr at debug level, matching the
// verbosity the control loop needs while iterating on the bench.
func NewDefaultLogger() *slog.Logger {
	return NewLogger(os.Stderr, slog.LevelDebug)
}

// SetGlobalLogger installs the logger returned by GetGlobalLogger. Call once at
// startup; the firmware has a single cooperative loop so no synchronization beyond
// a plain mutex is required.
func SetGlobalLogger(l *slog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// GetGlobalLogger returns the process-wide logger, lazily creating the default one
// on first use so components never have to guard against a nil logger.
func GetGlobalLogger() *slog.Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewDefaultLogger()
	}
	return globalLogger
}
