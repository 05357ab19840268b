// SPDX-License-Identifier: BSD-3-Clause

package pid

import (
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

// Controller regulates chamber temperature against a setpoint by
// driving a heater's PWM duty cycle, while independently bounding
// heater element temperature via a dynamic ceiling. It is not
// goroutine-safe; the orchestrator owns it exclusively and calls Step
// from its single cooperative loop.
type Controller struct {
	cfg cfg

	integral     float64
	lastChamber  float64
	derivative   float64
	coolingRate  float64
	lastTime     time.Time
	lastOutput   float64
	firstRun     bool
}

// New creates a Controller with NORMAL tuning and a full-range output
// unless overridden by options.
func New(opts ...Option) *Controller {
	c := defaultConfig()
	for _, opt := range opts {
		opt.apply(&c)
	}
	return &Controller{cfg: c, firstRun: true}
}

// Step advances the controller by one sample. setpoint and chamber are
// in °C, heaterTemp is the current heater element temperature in °C,
// and now is the platform's monotonic clock. The first call after
// construction or Reset records state and returns 0.
func (c *Controller) Step(setpoint, chamber, heaterTemp float64, now time.Time) float64 {
	if c.firstRun {
		c.lastTime = now
		c.lastChamber = chamber
		c.firstRun = false
		return 0
	}

	dt := now.Sub(c.lastTime).Seconds()
	if dt <= 0 {
		c.lastOutput = clamp(c.integral, c.cfg.outMin, c.cfg.outMax)
		return c.lastOutput
	}

	// Step 1: filtered cooling rate.
	c.coolingRate = coolingRateAlpha*(chamber-c.lastChamber)/dt + (1-coolingRateAlpha)*c.coolingRate

	// Step 2: baseline error with predictive cooling boost.
	e := setpoint - chamber
	if c.coolingRate < coolingRateThreshold {
		predicted := chamber + c.coolingRate*coolingHorizonSeconds
		predictedError := setpoint - predicted
		if predictedError > e {
			e += (predictedError - e) * coolingBoostGain
		}
	}

	// Step 3: proportional term.
	p := c.cfg.gains.Kp * e

	// Step 4: integral term with anti-windup.
	candidate := c.integral + c.cfg.gains.Ki*e*dt
	saturatingHigh := e > 0 && p+candidate > c.cfg.outMax
	saturatingLow := e < 0 && p+candidate < c.cfg.outMin
	if !saturatingHigh && !saturatingLow {
		c.integral = candidate
	}
	c.integral = clamp(c.integral, c.cfg.outMin, c.cfg.outMax)

	// Step 5: derivative on measurement, filtered.
	raw := -c.cfg.gains.Kd * (chamber - c.lastChamber) / dt
	c.derivative = derivativeAlpha*raw + (1-derivativeAlpha)*c.derivative

	// Step 6: combine and clamp.
	out := clamp(p+c.integral+c.derivative, c.cfg.outMin, c.cfg.outMax)

	// Step 7: two-phase dynamic heater ceiling.
	ceiling := c.heaterCeiling(setpoint, chamber)
	switch {
	case heaterTemp >= ceiling:
		out = 0
		c.integral = 0
	case ceiling-heaterTemp < config.PIDTempSlowdownMargin:
		scale := (ceiling - heaterTemp) / config.PIDTempSlowdownMargin
		out *= scale
		c.integral *= scale
	}

	// Step 8: persist state for the next step.
	c.lastChamber = chamber
	c.lastTime = now
	c.lastOutput = out

	return out
}

// heaterCeiling computes the dynamic heater-temperature ceiling per the
// two-phase aggressive/conservative schedule.
func (c *Controller) heaterCeiling(setpoint, chamber float64) float64 {
	boxError := setpoint - chamber
	approachMargin := config.PIDTempSlowdownMargin

	switch {
	case boxError > approachMargin:
		return c.cfg.maxAllowedTemp
	case boxError > 0:
		ratio := boxError / approachMargin
		conservative := setpoint + maxBoxTempOvershoot
		return conservative + ratio*(c.cfg.maxAllowedTemp-conservative)
	default:
		return setpoint + maxBoxTempOvershoot
	}
}

// Reset zeros the integral, derivative, and cooling-rate history and
// re-arms the first-run behavior.
func (c *Controller) Reset() {
	c.integral = 0
	c.derivative = 0
	c.coolingRate = 0
	c.lastChamber = 0
	c.lastOutput = 0
	c.firstRun = true
}

// SetProfile swaps the controller's gain triple to one of the three
// built-in profiles.
func (c *Controller) SetProfile(name ProfileName) {
	c.cfg.gains = GainsFor(name)
}

// SetLimits updates the output bounds, clamping the upper bound to
// PWMMaxPIDOutput.
func (c *Controller) SetLimits(lo, hi float64) error {
	if lo > hi {
		return ErrInvalidLimits
	}
	if hi > config.PWMMaxPIDOutput {
		hi = config.PWMMaxPIDOutput
	}
	c.cfg.outMin, c.cfg.outMax = lo, hi
	return nil
}

// SetMaxAllowedTemp updates the outer ceiling used by the aggressive
// phase of the heater-ceiling schedule.
func (c *Controller) SetMaxAllowedTemp(temp float64) {
	c.cfg.maxAllowedTemp = temp
}

// LastOutput returns the most recent output Step produced, or 0 before
// the first completed step.
func (c *Controller) LastOutput() float64 {
	return c.lastOutput
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
