// SPDX-License-Identifier: BSD-3-Clause

// Package log provides the structured console logger shared by every component
// of the dryer core. It wraps zerolog behind the standard library's slog facade
// so callers only ever depend on *slog.Logger, while the actual rendering stays
// human-readable on the bench.
//
// # Basic usage
//
//	logger := log.NewDefaultLogger()
//	logger.Info("cycle started", "preset", "PLA", "target_temp", 50.0)
package log
