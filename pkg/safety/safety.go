// SPDX-License-Identifier: BSD-3-Clause

package safety

import (
	"fmt"
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

// EmergencyHandler is called once, in subscriber registration order,
// when the monitor latches an emergency.
type EmergencyHandler func(reason string)

type sensorState struct {
	lastValue     float64
	lastTimestamp time.Time
	everValid     bool
}

// Monitor is the independent thermal safety watchdog. It is not
// goroutine-safe; the orchestrator owns it exclusively.
type Monitor struct {
	cfg cfg

	heater sensorState
	box    sensorState

	fired       bool
	subscribers [config.MaxSubscribers]EmergencyHandler
	subCount    int
}

// New creates a Monitor with the default limits unless overridden.
func New(opts ...Option) *Monitor {
	c := defaultConfig()
	for _, opt := range opts {
		opt.apply(&c)
	}
	return &Monitor{cfg: c}
}

// Subscribe registers a handler to be called when an emergency fires.
// It panics if called more than config.MaxSubscribers times, matching
// the fixed-arity registry the design calls for: subscriber counts are
// known and small at compile time.
func (m *Monitor) Subscribe(handler EmergencyHandler) {
	if m.subCount >= len(m.subscribers) {
		panic(ErrTooManySubscribers)
	}
	m.subscribers[m.subCount] = handler
	m.subCount++
}

// SetMaxHeaterTemp updates the heater over-temperature limit.
func (m *Monitor) SetMaxHeaterTemp(temp float64) { m.cfg.maxHeaterTemp = temp }

// SetMaxBoxTemp updates the chamber over-temperature limit.
func (m *Monitor) SetMaxBoxTemp(temp float64) { m.cfg.maxBoxTemp = temp }

// NotifyHeater records a heater temperature reading and fires an
// emergency if it trips the configured limit.
func (m *Monitor) NotifyHeater(temp float64, ts time.Time) {
	m.heater = sensorState{lastValue: temp, lastTimestamp: ts, everValid: true}
	if temp >= m.cfg.maxHeaterTemp {
		m.fire(fmt.Sprintf("Heater sensor over limit: %.1f >= %.1f", temp, m.cfg.maxHeaterTemp))
	}
}

// NotifyBox records a chamber temperature reading and fires an
// emergency if it trips the configured limit.
func (m *Monitor) NotifyBox(temp float64, ts time.Time) {
	m.box = sensorState{lastValue: temp, lastTimestamp: ts, everValid: true}
	if temp >= m.cfg.maxBoxTemp {
		m.fire(fmt.Sprintf("Box sensor over limit: %.1f >= %.1f", temp, m.cfg.maxBoxTemp))
	}
}

// Tick checks both sensors for staleness. A sensor that has never
// reported a valid reading is exempt, so a cold boot never trips the
// timeout path before the first reading arrives.
func (m *Monitor) Tick(now time.Time) {
	if m.heater.everValid && now.Sub(m.heater.lastTimestamp) > m.cfg.sensorTimeout {
		m.fire("Heater sensor timeout")
	}
	if m.box.everValid && now.Sub(m.box.lastTimestamp) > m.cfg.sensorTimeout {
		m.fire("Box sensor timeout")
	}
}

func (m *Monitor) fire(reason string) {
	if m.fired {
		return
	}
	m.fired = true
	for i := 0; i < m.subCount; i++ {
		m.subscribers[i](reason)
	}
}

// Fired reports whether an emergency has latched since the last Begin.
func (m *Monitor) Fired() bool { return m.fired }

// Begin re-arms the monitor, clearing the latched emergency flag. It
// does not clear sensor history, so a still-stale sensor will
// immediately re-trip on the next Tick.
func (m *Monitor) Begin() {
	m.fired = false
}
