// SPDX-License-Identifier: BSD-3-Clause

package pid

import (
	"testing"
	"time"
)

func TestFirstStepReturnsZero(t *testing.T) {
	c := New()
	out := c.Step(50, 25, 25, time.Unix(0, 0))
	if out != 0 {
		t.Fatalf("first step: got %v, want 0", out)
	}
}

func TestOutputBounded(t *testing.T) {
	c := New(WithProfile(STRONG))
	start := time.Unix(0, 0)
	c.Step(80, 20, 20, start)
	out := c.Step(80, 20, 20, start.Add(500*time.Millisecond))
	if out < 0 || out > 100 {
		t.Fatalf("output %v out of [0, 100]", out)
	}
}

func TestHeaterAtCeilingForcesZeroAndClearsIntegral(t *testing.T) {
	c := New(WithMaxAllowedTemp(90))
	start := time.Unix(0, 0)
	c.Step(50, 30, 30, start)
	// Chamber far from setpoint (boxError=20 > margin=15): ceiling is
	// the aggressive phase, i.e. maxAllowedTemp (90).
	out := c.Step(50, 30, 90, start.Add(time.Second))
	if out != 0 {
		t.Fatalf("heater at ceiling: got %v, want 0", out)
	}
	if c.integral != 0 {
		t.Fatalf("heater at ceiling: integral = %v, want 0", c.integral)
	}
}

func TestHeaterNearCeilingScalesOutputDown(t *testing.T) {
	unscaled := New(WithProfile(STRONG), WithMaxAllowedTemp(90))
	scaled := New(WithProfile(STRONG), WithMaxAllowedTemp(90))
	start := time.Unix(0, 0)
	unscaled.Step(50, 30, 20, start)
	scaled.Step(50, 30, 20, start)

	next := start.Add(time.Second)
	outFar := unscaled.Step(50, 30, 20, next)   // heater far below ceiling
	outNear := scaled.Step(50, 30, 83, next)    // ceiling 90, 7°C away (< margin 15)
	if outNear >= outFar {
		t.Fatalf("near-ceiling output %v should be less than far-from-ceiling output %v", outNear, outFar)
	}
}

func TestPredictiveCoolingBoostsOutput(t *testing.T) {
	boosted := New(WithProfile(NORMAL), WithMaxAllowedTemp(90))
	control := New(WithProfile(NORMAL), WithMaxAllowedTemp(90))

	start := time.Unix(0, 0)
	boosted.Step(50, 51, 40, start)
	control.Step(50, 51, 40, start)

	var gotBoosted, gotControl float64
	t0 := start
	chambers := []float64{50.8, 50.6, 50.4} // cooling at -0.2 C/s
	for i, chamber := range chambers {
		ts := t0.Add(time.Duration(i+1) * time.Second)
		gotBoosted = boosted.Step(50, chamber, 40, ts)
		// Zero the control run's filtered cooling rate around every step
		// so it carries no history: its rate then comes from the current
		// sample alone (0.7 * -0.2 = -0.14 C/s), a weaker boost than the
		// boosted run's accumulating filter.
		control.coolingRate = 0
		gotControl = control.Step(50, chamber, 40, ts)
		control.coolingRate = 0
	}

	if !(gotBoosted > gotControl) {
		t.Fatalf("predictive cooling: boosted output %v should exceed control output %v", gotBoosted, gotControl)
	}
}

func TestResetRearmsFirstRun(t *testing.T) {
	c := New()
	c.Step(50, 25, 25, time.Unix(0, 0))
	c.Step(50, 30, 25, time.Unix(1, 0))
	c.Reset()
	out := c.Step(50, 30, 25, time.Unix(2, 0))
	if out != 0 {
		t.Fatalf("after reset, first step: got %v, want 0", out)
	}
}

func TestSetLimitsRejectsInverted(t *testing.T) {
	c := New()
	if err := c.SetLimits(50, 10); err == nil {
		t.Fatal("expected error for lo > hi")
	}
}

func TestSetLimitsClampsUpperBound(t *testing.T) {
	c := New()
	if err := c.SetLimits(0, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.cfg.outMax != 100 {
		t.Fatalf("outMax = %v, want 100", c.cfg.outMax)
	}
}
