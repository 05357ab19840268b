// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

import (
	"log/slog"

	"github.com/filamentdry/dryercore/pkg/log"
)

type cfg struct {
	logger *slog.Logger
	sound  Sound
}

func defaultConfig() cfg {
	return cfg{
		logger: log.GetGlobalLogger(),
		sound:  NoopSound{},
	}
}

// Option configures a new Orchestrator.
type Option interface {
	apply(*cfg)
}

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *cfg) { c.logger = o.logger }

// WithLogger overrides the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type soundOption struct{ sound Sound }

func (o soundOption) apply(c *cfg) { c.sound = o.sound }

// WithSound wires a sound player. The orchestrator gates every cue
// through the persisted sound_enabled setting regardless of what is
// passed here.
func WithSound(sound Sound) Option { return soundOption{sound: sound} }
