// SPDX-License-Identifier: BSD-3-Clause

package store

import (
	"log/slog"

	"github.com/filamentdry/dryercore/pkg/log"
	"github.com/filamentdry/dryercore/pkg/preset"
)

// Store is the dryer's persistence layer. It is not goroutine-safe;
// the orchestrator owns it exclusively.
type Store struct {
	fs     Filesystem
	logger *slog.Logger

	healthy bool

	settings Settings

	runtime      RuntimeSnapshot
	runtimeValid bool
}

// New creates a Store over the given Filesystem.
func New(fs Filesystem, opts ...Option) *Store {
	s := &Store{fs: fs, logger: log.GetGlobalLogger(), settings: DefaultSettings()}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

// Option configures a new Store.
type Option interface {
	apply(*Store)
}

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(s *Store) { s.logger = o.logger }

// WithLogger overrides the store's logger.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

// Begin mounts the underlying filesystem and loads both records into
// the in-memory cache. A mount failure marks the store unhealthy but
// the process keeps running on in-memory defaults. A present but
// unparseable settings file is reformatted with defaults; a present
// but unparseable runtime file is deleted.
func (s *Store) Begin() error {
	if err := s.fs.Mount(); err != nil {
		s.healthy = false
		s.logger.Warn("store: mount failed, continuing with in-memory defaults", "error", err)
		return nil
	}
	s.healthy = true

	if err := s.loadSettings(); err != nil {
		return err
	}
	s.loadRuntime()
	return nil
}

// Healthy reports whether the underlying filesystem mounted.
func (s *Store) Healthy() bool { return s.healthy }

func (s *Store) loadSettings() error {
	data, err := s.fs.Read(settingsFile)
	if err == ErrNotFound {
		return s.flushSettings()
	}
	if err != nil {
		s.logger.Warn("store: settings read failed", "error", err)
		return nil
	}

	parsed, ok := unmarshalSettings(data)
	if !ok {
		s.logger.Warn("store: settings file unparseable, reformatting with defaults")
		s.settings = DefaultSettings()
		return s.flushSettings()
	}
	s.settings = parsed
	return nil
}

func (s *Store) loadRuntime() {
	data, err := s.fs.Read(runtimeFile)
	if err == ErrNotFound {
		return
	}
	if err != nil {
		s.logger.Warn("store: runtime read failed", "error", err)
		return
	}

	parsed, ok := unmarshalRuntime(data)
	if !ok {
		s.logger.Warn("store: runtime file unparseable, deleting")
		_ = s.fs.Remove(runtimeFile)
		return
	}
	s.runtime = parsed
	s.runtimeValid = true
}

// Settings returns the cached settings. Readers never perform I/O.
func (s *Store) Settings() Settings { return s.settings }

// SetSettings replaces the cached settings wholesale and flushes
// immediately. Flush failures are logged, not returned: the setter
// always succeeds in memory.
func (s *Store) SetSettings(settings Settings) {
	s.settings = settings
	if err := s.flushSettings(); err != nil {
		s.logger.Warn("store: settings flush failed", "error", err)
	}
}

func (s *Store) flushSettings() error {
	data, err := s.settings.marshal()
	if err != nil {
		return err
	}
	if err := s.fs.Write(settingsFile, data); err != nil {
		s.logger.Warn("store: settings flush failed", "error", err)
	}
	return nil
}

// HasValidRuntimeState reports whether the cached runtime snapshot is
// considered present.
func (s *Store) HasValidRuntimeState() bool { return s.runtimeValid }

// RuntimeState returns the cached runtime snapshot.
func (s *Store) RuntimeState() RuntimeSnapshot { return s.runtime }

// SaveRuntimeState caches a new runtime snapshot and attempts to flush
// it. The cache always reflects the call whether or not the flush
// succeeds.
func (s *Store) SaveRuntimeState(state string, elapsed uint32, targetTemp float64, targetTime uint32, presetName string, ts uint32) {
	s.runtime = RuntimeSnapshot{
		State:      state,
		Elapsed:    elapsed,
		TargetTemp: targetTemp,
		TargetTime: targetTime,
		Preset:     preset.ParseName(presetName),
		Timestamp:  ts,
	}
	s.runtimeValid = true

	data, err := s.runtime.marshal()
	if err != nil {
		s.logger.Warn("store: runtime marshal failed", "error", err)
		return
	}
	if err := s.fs.Write(runtimeFile, data); err != nil {
		s.logger.Warn("store: runtime flush failed", "error", err)
	}
}

// ClearRuntimeState invalidates the cached runtime snapshot and
// deletes the file if present.
func (s *Store) ClearRuntimeState() {
	s.runtime = RuntimeSnapshot{}
	s.runtimeValid = false
	if err := s.fs.Remove(runtimeFile); err != nil {
		s.logger.Warn("store: runtime file removal failed", "error", err)
	}
}

// SaveEmergencyState writes a free-text emergency marker and a runtime
// record with state FAILED at the given timestamp.
func (s *Store) SaveEmergencyState(reason string, ts uint32) {
	if err := s.fs.Write(emergencyFile, []byte(reason)); err != nil {
		s.logger.Warn("store: emergency marker flush failed", "error", err)
	}
	s.SaveRuntimeState("FAILED", s.runtime.Elapsed, s.runtime.TargetTemp, s.runtime.TargetTime, string(s.runtime.Preset), ts)
}

// EmergencyMarker returns the persisted emergency reason, if any.
func (s *Store) EmergencyMarker() (string, bool) {
	data, err := s.fs.Read(emergencyFile)
	if err != nil {
		return "", false
	}
	return string(data), true
}
