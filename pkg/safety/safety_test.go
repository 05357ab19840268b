// SPDX-License-Identifier: BSD-3-Clause

package safety

import (
	"strings"
	"testing"
	"time"
)

func TestOverTempEmergencyFiresAtLimit(t *testing.T) {
	m := New(WithMaxHeaterTemp(90))
	var reason string
	m.Subscribe(func(r string) { reason = r })

	m.NotifyHeater(89.9, time.Unix(0, 0))
	if m.Fired() {
		t.Fatal("should not fire below limit")
	}

	m.NotifyHeater(90, time.Unix(1, 0))
	if !m.Fired() {
		t.Fatal("should fire at exactly the limit (>= semantics)")
	}
	if !strings.Contains(reason, "90") {
		t.Fatalf("reason %q should mention the limit", reason)
	}
}

func TestOverTempEmergencyScenario(t *testing.T) {
	m := New(WithMaxHeaterTemp(90))
	var reason string
	m.Subscribe(func(r string) { reason = r })
	m.NotifyHeater(95, time.Unix(0, 0))
	if !m.Fired() {
		t.Fatal("expected emergency")
	}
	if !strings.Contains(reason, "90") {
		t.Fatalf("reason %q should contain the limit 90", reason)
	}
}

func TestEmergencyLatchesAndSuppressesFurtherTriggers(t *testing.T) {
	m := New(WithMaxHeaterTemp(90))
	calls := 0
	m.Subscribe(func(string) { calls++ })

	m.NotifyHeater(95, time.Unix(0, 0))
	m.NotifyHeater(100, time.Unix(1, 0))
	if calls != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", calls)
	}
}

func TestBeginRearmsLatch(t *testing.T) {
	m := New(WithMaxHeaterTemp(90))
	m.NotifyHeater(95, time.Unix(0, 0))
	m.Begin()
	if m.Fired() {
		t.Fatal("expected Fired to be false after Begin")
	}
}

func TestSensorTimeoutScenario(t *testing.T) {
	m := New(WithSensorTimeout(5 * time.Second))
	var reason string
	m.Subscribe(func(r string) { reason = r })

	start := time.Unix(0, 0)
	m.NotifyBox(40, start)
	m.Tick(start.Add(6 * time.Second))

	if !m.Fired() {
		t.Fatal("expected timeout emergency")
	}
	if !strings.Contains(reason, "Box sensor timeout") {
		t.Fatalf("reason %q should be the box timeout message", reason)
	}
}

func TestColdBootDoesNotTriggerTimeout(t *testing.T) {
	m := New(WithSensorTimeout(5 * time.Second))
	m.Tick(time.Unix(100, 0))
	if m.Fired() {
		t.Fatal("cold boot must not trip the timeout path")
	}
}

func TestDispatchOrderIsRegistrationOrder(t *testing.T) {
	m := New(WithMaxHeaterTemp(90))
	var order []int
	m.Subscribe(func(string) { order = append(order, 1) })
	m.Subscribe(func(string) { order = append(order, 2) })
	m.Subscribe(func(string) { order = append(order, 3) })

	m.NotifyHeater(95, time.Unix(0, 0))
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
