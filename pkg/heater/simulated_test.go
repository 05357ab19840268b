// SPDX-License-Identifier: BSD-3-Clause

package heater

import (
	"testing"
	"time"
)

func TestSimulatedStartStop(t *testing.T) {
	h := NewSimulated()
	now := time.Unix(0, 0)
	_ = h.Begin(now)
	if h.IsRunning() {
		t.Fatal("should not be running before Start")
	}
	_ = h.Start(now)
	if !h.IsRunning() {
		t.Fatal("should be running after Start")
	}
	_ = h.Stop(now)
	if h.IsRunning() {
		t.Fatal("should not be running after Stop")
	}
}

func TestSimulatedEmergencyStopZeroesDuty(t *testing.T) {
	h := NewSimulated()
	_ = h.SetPWM(80)
	_ = h.Start(time.Unix(0, 0))
	h.EmergencyStop()
	if h.IsRunning() {
		t.Fatal("should not be running after emergency stop")
	}
	if h.CurrentPWM() != 0 {
		t.Fatalf("duty = %d, want 0", h.CurrentPWM())
	}
}

func TestSimulatedRejectsInvalidDutyCycle(t *testing.T) {
	h := NewSimulated()
	if err := h.SetPWM(101); err == nil {
		t.Fatal("expected error for duty cycle > 100")
	}
}
