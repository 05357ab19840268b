// SPDX-License-Identifier: BSD-3-Clause

// Package safety implements the dryer's independent thermal safety
// monitor: a latched, edge-triggered watchdog over heater and chamber
// temperature notifications, decoupled from the PID controller so a
// runaway controller can never suppress it.
package safety
