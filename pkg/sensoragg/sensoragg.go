// SPDX-License-Identifier: BSD-3-Clause

package sensoragg

import (
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
	"github.com/filamentdry/dryercore/pkg/sensor"
)

// HeaterTempHandler is called with the fresh heater-temperature
// reading whenever a conversion completes successfully.
type HeaterTempHandler func(reading sensor.Reading)

// BoxDataHandler is called with the fresh chamber temperature and
// humidity readings whenever a synchronous read completes
// successfully.
type BoxDataHandler func(temp, humidity sensor.Reading)

// ErrorHandler is called when a read fails and the affected sensor has
// become invalid. source is "heater" or "box".
type ErrorHandler func(source string, err error)

// Aggregator schedules heater and chamber reads and caches the latest
// readings. It is not goroutine-safe; the orchestrator owns it
// exclusively and drives it from Tick.
type Aggregator struct {
	cfg cfg

	heater sensor.HeaterSensor
	box    sensor.ChamberSensor

	lastHeaterAttempt time.Time
	heaterPending     bool
	lastBoxAttempt    time.Time

	heaterTempSubs [config.MaxSubscribers]HeaterTempHandler
	heaterTempN    int
	boxDataSubs    [config.MaxSubscribers]BoxDataHandler
	boxDataN       int
	errorSubs      [config.MaxSubscribers]ErrorHandler
	errorN         int
}

// New creates an Aggregator over the given sensor capabilities.
func New(heater sensor.HeaterSensor, box sensor.ChamberSensor, opts ...Option) *Aggregator {
	c := defaultConfig()
	for _, opt := range opts {
		opt.apply(&c)
	}
	return &Aggregator{cfg: c, heater: heater, box: box}
}

// Begin initializes both sensors.
func (a *Aggregator) Begin(now time.Time) error {
	if err := a.heater.Begin(now); err != nil {
		return err
	}
	return a.box.Begin(now)
}

// SubscribeHeaterTemp registers a handler for fresh heater-temperature
// readings. It panics past config.MaxSubscribers registrations.
func (a *Aggregator) SubscribeHeaterTemp(h HeaterTempHandler) {
	if a.heaterTempN >= len(a.heaterTempSubs) {
		panic(ErrTooManySubscribers)
	}
	a.heaterTempSubs[a.heaterTempN] = h
	a.heaterTempN++
}

// SubscribeBoxData registers a handler for fresh chamber readings.
func (a *Aggregator) SubscribeBoxData(h BoxDataHandler) {
	if a.boxDataN >= len(a.boxDataSubs) {
		panic(ErrTooManySubscribers)
	}
	a.boxDataSubs[a.boxDataN] = h
	a.boxDataN++
}

// SubscribeError registers a handler for read errors.
func (a *Aggregator) SubscribeError(h ErrorHandler) {
	if a.errorN >= len(a.errorSubs) {
		panic(ErrTooManySubscribers)
	}
	a.errorSubs[a.errorN] = h
	a.errorN++
}

// Tick drives both sensors' scheduling and dispatches notifications.
func (a *Aggregator) Tick(now time.Time) {
	a.tickHeater(now)
	a.tickBox(now)
}

func (a *Aggregator) tickHeater(now time.Time) {
	if a.heaterPending {
		if !a.heater.IsConversionReady(now) {
			return
		}
		err := a.heater.Retrieve(now)
		a.heaterPending = false
		if err != nil {
			if !a.heater.IsValid() {
				a.dispatchError("heater", err)
			}
			return
		}
		a.dispatchHeaterTemp(a.heater.Temperature())
		return
	}

	if now.Sub(a.lastHeaterAttempt) < a.cfg.heaterInterval {
		return
	}
	a.lastHeaterAttempt = now
	if err := a.heater.RequestConversion(now); err != nil {
		if !a.heater.IsValid() {
			a.dispatchError("heater", err)
		}
		return
	}
	a.heaterPending = true
}

func (a *Aggregator) tickBox(now time.Time) {
	if now.Sub(a.lastBoxAttempt) < a.cfg.boxInterval {
		return
	}
	a.lastBoxAttempt = now

	if err := a.box.Read(now); err != nil {
		if !a.box.IsValid() {
			a.dispatchError("box", err)
		}
		return
	}
	a.dispatchBoxData(a.box.Temperature(), a.box.Humidity())
}

func (a *Aggregator) dispatchHeaterTemp(r sensor.Reading) {
	for i := 0; i < a.heaterTempN; i++ {
		a.heaterTempSubs[i](r)
	}
}

func (a *Aggregator) dispatchBoxData(temp, humidity sensor.Reading) {
	for i := 0; i < a.boxDataN; i++ {
		a.boxDataSubs[i](temp, humidity)
	}
}

func (a *Aggregator) dispatchError(source string, err error) {
	for i := 0; i < a.errorN; i++ {
		a.errorSubs[i](source, err)
	}
}

// HeaterTemp returns the cached heater-temperature reading.
func (a *Aggregator) HeaterTemp() sensor.Reading { return a.heater.Temperature() }

// BoxTemp returns the cached chamber temperature reading.
func (a *Aggregator) BoxTemp() sensor.Reading { return a.box.Temperature() }

// BoxHumidity returns the cached chamber humidity reading.
func (a *Aggregator) BoxHumidity() sensor.Reading { return a.box.Humidity() }
