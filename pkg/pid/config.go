// SPDX-License-Identifier: BSD-3-Clause

package pid

import "github.com/filamentdry/dryercore/pkg/config"

// coolingRateAlpha and derivativeAlpha are the exponential filter
// coefficients for the cooling-rate estimate and the derivative term,
// per the step-by-step algorithm.
const (
	coolingRateAlpha = 0.7
	derivativeAlpha  = 0.7

	// coolingRateThreshold is the °C/s cooling rate beyond which the
	// predictive boost engages.
	coolingRateThreshold = -0.08
	// coolingHorizonSeconds is how far ahead the cooling rate is
	// projected to estimate the predicted chamber temperature.
	coolingHorizonSeconds = 10.0
	// coolingBoostGain scales how much of the predicted-vs-baseline
	// error gap is folded back into the working error.
	coolingBoostGain = 1.5

	// maxBoxTempOvershoot is the headroom above setpoint the
	// conservative phase of the heater ceiling allows once the chamber
	// has nearly reached its target.
	maxBoxTempOvershoot = config.DefaultMaxOvershoot
)

// cfg holds the controller's mutable configuration, separate from its
// running state so SetProfile/SetLimits/SetMaxAllowedTemp can update it
// without disturbing the integral/derivative history.
type cfg struct {
	gains          Gains
	outMin, outMax float64
	maxAllowedTemp float64
}

func defaultConfig() cfg {
	return cfg{
		gains:          GainsFor(NORMAL),
		outMin:         0,
		outMax:         config.PWMMaxPIDOutput,
		maxAllowedTemp: config.MaxHeaterTemp,
	}
}

// Option configures a new Controller.
type Option interface {
	apply(*cfg)
}

type profileOption struct{ name ProfileName }

func (o profileOption) apply(c *cfg) { c.gains = GainsFor(o.name) }

// WithProfile selects one of the three built-in tuning profiles.
func WithProfile(name ProfileName) Option { return profileOption{name: name} }

type limitsOption struct{ lo, hi float64 }

func (o limitsOption) apply(c *cfg) {
	hi := o.hi
	if hi > config.PWMMaxPIDOutput {
		hi = config.PWMMaxPIDOutput
	}
	c.outMin, c.outMax = o.lo, hi
}

// WithLimits sets the output bounds, clamping the upper bound to
// PWMMaxPIDOutput.
func WithLimits(lo, hi float64) Option { return limitsOption{lo: lo, hi: hi} }

type maxAllowedTempOption struct{ temp float64 }

func (o maxAllowedTempOption) apply(c *cfg) { c.maxAllowedTemp = o.temp }

// WithMaxAllowedTemp sets the outer heater-ceiling bound used in the
// aggressive phase of the two-phase ceiling.
func WithMaxAllowedTemp(temp float64) Option { return maxAllowedTempOption{temp: temp} }
