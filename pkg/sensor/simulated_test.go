// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"testing"
	"time"
)

func TestSimulatedChamberReadUpdatesBoth(t *testing.T) {
	c := NewSimulatedChamber()
	now := time.Unix(0, 0)
	_ = c.Begin(now)
	c.SetNext(42.5, 55)
	if err := c.Read(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Temperature().Value != 42.5 || c.Humidity().Value != 55 {
		t.Fatalf("unexpected readings: %+v %+v", c.Temperature(), c.Humidity())
	}
	if !c.IsValid() {
		t.Fatal("expected valid after successful read")
	}
}

func TestSimulatedChamberInvalidatesAfterConsecutiveFailures(t *testing.T) {
	c := NewSimulatedChamber()
	now := time.Unix(0, 0)
	_ = c.Begin(now)
	c.SetNext(20, 40)
	_ = c.Read(now)

	for i := 0; i < 3; i++ {
		c.FailNext()
		_ = c.Read(now)
	}
	if c.IsValid() {
		t.Fatal("expected invalid after 3 consecutive failures")
	}
	if c.LastError() == nil {
		t.Fatal("expected a recorded error")
	}
}

func TestSimulatedHeaterConversionCycle(t *testing.T) {
	h := NewSimulatedHeater()
	start := time.Unix(0, 0)
	_ = h.Begin(start)

	if err := h.RequestConversion(start); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.IsConversionReady(start.Add(100 * time.Millisecond)) {
		t.Fatal("should not be ready before conversion delay")
	}
	ready := start.Add(800 * time.Millisecond)
	if !h.IsConversionReady(ready) {
		t.Fatal("should be ready after conversion delay")
	}

	h.SetNext(60)
	if err := h.Retrieve(ready); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Temperature().Value != 60 {
		t.Fatalf("got %v, want 60", h.Temperature().Value)
	}
}

func TestSimulatedHeaterRetrieveWithoutConversionErrors(t *testing.T) {
	h := NewSimulatedHeater()
	now := time.Unix(0, 0)
	_ = h.Begin(now)
	if err := h.Retrieve(now); err == nil {
		t.Fatal("expected error retrieving without a pending conversion")
	}
}
