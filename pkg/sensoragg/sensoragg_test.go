// SPDX-License-Identifier: BSD-3-Clause

package sensoragg

import (
	"testing"
	"time"

	"github.com/filamentdry/dryercore/pkg/sensor"
)

func TestHeaterConversionCycleDispatchesOnceReady(t *testing.T) {
	h := sensor.NewSimulatedHeater()
	b := sensor.NewSimulatedChamber()
	a := New(h, b, WithHeaterInterval(500*time.Millisecond))

	start := time.Unix(0, 0)
	_ = a.Begin(start)

	var got sensor.Reading
	dispatched := 0
	a.SubscribeHeaterTemp(func(r sensor.Reading) {
		got = r
		dispatched++
	})

	h.SetNext(60)
	a.Tick(start) // requests conversion
	if dispatched != 0 {
		t.Fatal("should not dispatch before conversion completes")
	}

	a.Tick(start.Add(400 * time.Millisecond)) // not ready yet
	if dispatched != 0 {
		t.Fatal("should not dispatch before conversion delay elapses")
	}

	a.Tick(start.Add(800 * time.Millisecond)) // ready, retrieves
	if dispatched != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", dispatched)
	}
	if got.Value != 60 {
		t.Fatalf("got %v, want 60", got.Value)
	}
}

func TestBoxDataDispatchedOnInterval(t *testing.T) {
	h := sensor.NewSimulatedHeater()
	b := sensor.NewSimulatedChamber()
	a := New(h, b, WithBoxInterval(2*time.Second))

	start := time.Unix(0, 0)
	_ = a.Begin(start)

	dispatched := 0
	a.SubscribeBoxData(func(temp, humidity sensor.Reading) { dispatched++ })

	b.SetNext(30, 40)
	a.Tick(start)
	if dispatched != 1 {
		t.Fatalf("expected immediate first read, got %d dispatches", dispatched)
	}

	a.Tick(start.Add(time.Second))
	if dispatched != 1 {
		t.Fatal("should not re-read before the interval elapses")
	}

	a.Tick(start.Add(3 * time.Second))
	if dispatched != 2 {
		t.Fatalf("expected a second dispatch after the interval, got %d", dispatched)
	}
}

func TestBoxReadFailureDispatchesErrorOnceInvalid(t *testing.T) {
	h := sensor.NewSimulatedHeater()
	b := sensor.NewSimulatedChamber()
	a := New(h, b, WithBoxInterval(time.Second))
	start := time.Unix(0, 0)
	_ = a.Begin(start)

	errors := 0
	a.SubscribeError(func(source string, err error) { errors++ })

	for i := 0; i < 3; i++ {
		b.FailNext()
		a.Tick(start.Add(time.Duration(i) * time.Second))
	}
	if errors != 1 {
		t.Fatalf("expected exactly one error dispatch once invalid, got %d", errors)
	}
}
