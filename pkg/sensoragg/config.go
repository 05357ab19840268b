// SPDX-License-Identifier: BSD-3-Clause

package sensoragg

import (
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

type cfg struct {
	heaterInterval time.Duration
	boxInterval    time.Duration
}

func defaultConfig() cfg {
	return cfg{
		heaterInterval: config.HeaterTempInterval,
		boxInterval:    config.BoxDataInterval,
	}
}

// Option configures a new Aggregator.
type Option interface {
	apply(*cfg)
}

type heaterIntervalOption struct{ d time.Duration }

func (o heaterIntervalOption) apply(c *cfg) { c.heaterInterval = o.d }

// WithHeaterInterval overrides the heater-temperature scheduling
// interval.
func WithHeaterInterval(d time.Duration) Option { return heaterIntervalOption{d: d} }

type boxIntervalOption struct{ d time.Duration }

func (o boxIntervalOption) apply(c *cfg) { c.boxInterval = o.d }

// WithBoxInterval overrides the chamber scheduling interval.
func WithBoxInterval(d time.Duration) Option { return boxIntervalOption{d: d} }
