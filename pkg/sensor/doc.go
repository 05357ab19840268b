// SPDX-License-Identifier: BSD-3-Clause

// Package sensor fixes the capability contracts the sensor aggregator
// consumes, plus real and simulated implementations.
//
// Two contracts exist: ChamberSensor, a synchronous temperature and
// humidity source, and HeaterSensor, an asynchronous temperature source
// modeled as an explicit two-state machine (idle, converting) rather
// than a coroutine, per the request/poll/retrieve pattern a one-wire
// conversion imposes. Real drivers (DS18B20OneWire, AM2320I2C) talk to
// hardware through periph.io buses; the Simulated variants drive the
// same contracts from an in-memory value for tests and for cmd/dryerd's
// bench demonstration.
package sensor
