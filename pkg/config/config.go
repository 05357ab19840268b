// SPDX-License-Identifier: BSD-3-Clause

package config

import "time"

// Sensor scheduling intervals.
const (
	// HeaterTempInterval is the minimum spacing between heater-temperature
	// conversion attempts.
	HeaterTempInterval = 500 * time.Millisecond
	// BoxDataInterval is the minimum spacing between chamber temperature
	// and humidity reads.
	BoxDataInterval = 2000 * time.Millisecond
	// PIDUpdateInterval is the nominal cadence at which the orchestrator
	// expects a heater-temp notification to drive the PID controller.
	PIDUpdateInterval = 500 * time.Millisecond
	// StateSaveInterval is how often a runtime snapshot is flushed while
	// a cycle is RUNNING.
	StateSaveInterval = 60 * time.Second
	// SensorTimeout is how long a sensor may go without a valid reading
	// before the safety monitor fires a timeout emergency.
	SensorTimeout = 5 * time.Second
)

// Temperature and duration bounds.
const (
	// MinTemp is the lowest chamber setpoint a preset may specify.
	MinTemp = 30.0
	// MaxBoxTemp is the highest chamber temperature considered safe,
	// independent of any preset's overshoot allowance.
	MaxBoxTemp = 80.0
	// MaxHeaterTemp is the absolute ceiling on heater element temperature.
	MaxHeaterTemp = 90.0
	// DefaultMaxOvershoot is the largest overshoot a preset may configure.
	DefaultMaxOvershoot = 10.0
	// MinTime is the shortest drying cycle duration, in seconds.
	MinTime = 600
	// MaxTime is the longest drying cycle duration, in seconds.
	MaxTime = 36000

	// PIDTempSlowdownMargin is the chamber-to-setpoint gap, in °C, under
	// which the PID controller's heater ceiling switches from aggressive
	// to conservative, and also the heater-to-ceiling gap over which
	// output is linearly scaled down before being forced to zero.
	PIDTempSlowdownMargin = 15.0
)

// Sensor out-of-range bounds.
const (
	HeaterTempMin = -50.0
	HeaterTempMax = 150.0
	BoxTempMin    = -40.0
	BoxTempMax    = 80.0
	HumidityMin   = 0.0
	HumidityMax   = 100.0
)

// PWMMax is the highest duty-cycle percentage a heater driver accepts.
const PWMMax = 100

// PWMMaxPIDOutput is the upper bound on the PID controller's raw output,
// prior to being rounded and clamped into a driver duty cycle.
const PWMMaxPIDOutput = float64(PWMMax)

// MaxConsecutiveFailures is how many consecutive failed reads a sensor
// tolerates before it is marked invalid.
const MaxConsecutiveFailures = 3

// MaxSubscribers bounds the fixed-arity observer registries used by
// pkg/sensoragg, pkg/safety, and service/dryermgr: subscriber counts are
// known at compile time and small, so no heap-backed dynamic list is
// needed.
const MaxSubscribers = 4
