// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "time"

// ChamberSensor is the capability set the sensor aggregator uses for
// the synchronous chamber temperature/humidity source: begin, read,
// get_value, is_valid, last_error.
type ChamberSensor interface {
	// Begin initializes the sensor. now becomes the timestamp of the
	// cached readings, which stay marked invalid until the first
	// successful Read.
	Begin(now time.Time) error
	// Read performs a synchronous transaction and updates the cached
	// temperature and humidity readings.
	Read(now time.Time) error
	// Temperature returns the cached temperature reading.
	Temperature() Reading
	// Humidity returns the cached humidity reading.
	Humidity() Reading
	// IsValid reports whether the sensor is currently considered valid.
	IsValid() bool
	// LastError returns the most recent read error, or nil.
	LastError() error
}

// HeaterSensor is the capability set for the asynchronous heater
// temperature source: begin, get_value, is_valid, last_error, plus
// request_conversion and is_conversion_ready.
type HeaterSensor interface {
	Begin(now time.Time) error
	// RequestConversion starts an asynchronous temperature conversion.
	// Calling it while one is already outstanding restarts that
	// conversion.
	RequestConversion(now time.Time) error
	// IsConversionReady reports whether enough time has elapsed since
	// RequestConversion for the result to be retrievable.
	IsConversionReady(now time.Time) bool
	// Retrieve reads the result of a ready conversion and updates the
	// cached temperature reading. It clears the outstanding-conversion
	// state whether it succeeds or fails.
	Retrieve(now time.Time) error
	// Temperature returns the cached temperature reading.
	Temperature() Reading
	IsValid() bool
	LastError() error
}
