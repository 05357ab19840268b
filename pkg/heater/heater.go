// SPDX-License-Identifier: BSD-3-Clause

package heater

import "time"

// Driver is the capability set the orchestrator drives the heater
// element through.
type Driver interface {
	// Begin initializes the driver. It is called once, at orchestrator
	// startup, before any other method.
	Begin(now time.Time) error
	// Start enables output at the current duty cycle.
	Start(now time.Time) error
	// Stop disables output, leaving the last duty cycle cached but not
	// applied.
	Stop(now time.Time) error
	// EmergencyStop disables output immediately and zeros the duty
	// cycle, regardless of prior state. It never returns an error: an
	// emergency shutdown path that can itself fail is not a safety
	// mechanism.
	EmergencyStop()
	// SetPWM sets the duty cycle, as a percentage in [0, 100]. The duty
	// cycle is realized by the driver, not the caller.
	SetPWM(dutyPercent uint8) error
	// IsRunning reports whether output is currently enabled.
	IsRunning() bool
	// CurrentPWM returns the last duty cycle accepted by SetPWM.
	CurrentPWM() uint8
}
