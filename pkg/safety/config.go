// SPDX-License-Identifier: BSD-3-Clause

package safety

import (
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

type cfg struct {
	maxHeaterTemp float64
	maxBoxTemp    float64
	sensorTimeout time.Duration
}

func defaultConfig() cfg {
	return cfg{
		maxHeaterTemp: config.MaxHeaterTemp,
		maxBoxTemp:    config.MaxBoxTemp,
		sensorTimeout: config.SensorTimeout,
	}
}

// Option configures a new Monitor.
type Option interface {
	apply(*cfg)
}

type maxHeaterOption struct{ temp float64 }

func (o maxHeaterOption) apply(c *cfg) { c.maxHeaterTemp = o.temp }

// WithMaxHeaterTemp sets the heater over-temperature limit.
func WithMaxHeaterTemp(temp float64) Option { return maxHeaterOption{temp: temp} }

type maxBoxOption struct{ temp float64 }

func (o maxBoxOption) apply(c *cfg) { c.maxBoxTemp = o.temp }

// WithMaxBoxTemp sets the chamber over-temperature limit.
func WithMaxBoxTemp(temp float64) Option { return maxBoxOption{temp: temp} }

type sensorTimeoutOption struct{ d time.Duration }

func (o sensorTimeoutOption) apply(c *cfg) { c.sensorTimeout = o.d }

// WithSensorTimeout sets how long a sensor may go without a valid
// reading before a timeout emergency fires.
func WithSensorTimeout(d time.Duration) Option { return sensorTimeoutOption{d: d} }
