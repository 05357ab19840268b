// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"sync"
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

// SimulatedChamber is a ChamberSensor backed by an in-memory value,
// used by tests and by cmd/dryerd's bench demonstration in place of a
// real AM2320.
type SimulatedChamber struct {
	mu sync.Mutex

	tracker  failureTracker
	temp     Reading
	humidity Reading

	nextTemp     float64
	nextHumidity float64
	failNext     bool
}

// NewSimulatedChamber creates a simulated chamber sensor.
func NewSimulatedChamber() *SimulatedChamber {
	return &SimulatedChamber{tracker: newFailureTracker(config.MaxConsecutiveFailures)}
}

// SetNext sets the value the next successful Read will report.
func (s *SimulatedChamber) SetNext(temp, humidity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTemp, s.nextHumidity = temp, humidity
}

// FailNext causes the next Read to fail.
func (s *SimulatedChamber) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

func (s *SimulatedChamber) Begin(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = Reading{Timestamp: now}
	s.humidity = Reading{Timestamp: now}
	return nil
}

func (s *SimulatedChamber) Read(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext {
		s.failNext = false
		s.tracker.recordFailure(ErrTransport)
		s.temp.Valid = s.tracker.isValid()
		s.humidity.Valid = s.tracker.isValid()
		return ErrTransport
	}
	if s.nextTemp < config.BoxTempMin || s.nextTemp > config.BoxTempMax ||
		s.nextHumidity < config.HumidityMin || s.nextHumidity > config.HumidityMax {
		s.tracker.recordFailure(ErrOutOfRange)
		s.temp.Valid = s.tracker.isValid()
		s.humidity.Valid = s.tracker.isValid()
		return ErrOutOfRange
	}

	s.tracker.recordSuccess()
	s.temp = Reading{Value: s.nextTemp, Timestamp: now, Valid: true}
	s.humidity = Reading{Value: s.nextHumidity, Timestamp: now, Valid: true}
	return nil
}

func (s *SimulatedChamber) Temperature() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temp
}

func (s *SimulatedChamber) Humidity() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.humidity
}

func (s *SimulatedChamber) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.isValid()
}

func (s *SimulatedChamber) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.lastError()
}

// SimulatedHeater is a HeaterSensor backed by an in-memory value with a
// realistic conversion delay, standing in for a DS18B20.
type SimulatedHeater struct {
	mu sync.Mutex

	tracker          failureTracker
	temp             Reading
	conversionDelay  time.Duration
	converting       bool
	conversionStart  time.Time
	nextTemp         float64
	failNext         bool
}

// NewSimulatedHeater creates a simulated heater sensor with a 750ms
// conversion delay, matching a DS18B20 at full (12-bit) resolution.
func NewSimulatedHeater() *SimulatedHeater {
	return &SimulatedHeater{
		tracker:         newFailureTracker(config.MaxConsecutiveFailures),
		conversionDelay: 750 * time.Millisecond,
	}
}

func (s *SimulatedHeater) SetNext(temp float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTemp = temp
}

func (s *SimulatedHeater) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

func (s *SimulatedHeater) Begin(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = Reading{Timestamp: now}
	s.converting = false
	return nil
}

func (s *SimulatedHeater) RequestConversion(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.converting = true
	s.conversionStart = now
	return nil
}

func (s *SimulatedHeater) IsConversionReady(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.converting {
		return false
	}
	return now.Sub(s.conversionStart) >= s.conversionDelay
}

func (s *SimulatedHeater) Retrieve(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.converting {
		return ErrNotConverting
	}
	s.converting = false

	if s.failNext {
		s.failNext = false
		s.tracker.recordFailure(ErrTransport)
		s.temp.Valid = s.tracker.isValid()
		return ErrTransport
	}
	if s.nextTemp < config.HeaterTempMin || s.nextTemp > config.HeaterTempMax {
		s.tracker.recordFailure(ErrOutOfRange)
		s.temp.Valid = s.tracker.isValid()
		return ErrOutOfRange
	}

	s.tracker.recordSuccess()
	s.temp = Reading{Value: s.nextTemp, Timestamp: now, Valid: true}
	return nil
}

func (s *SimulatedHeater) Temperature() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temp
}

func (s *SimulatedHeater) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.isValid()
}

func (s *SimulatedHeater) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.lastError()
}
