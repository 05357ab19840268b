// SPDX-License-Identifier: BSD-3-Clause

package preset

import (
	"fmt"

	"github.com/filamentdry/dryercore/pkg/config"
)

// Name identifies a preset slot.
type Name string

const (
	PLA    Name = "PLA"
	PETG   Name = "PETG"
	CUSTOM Name = "CUSTOM"
)

// ParseName parses a persisted preset name, falling back to PLA for any
// unrecognized value per the external file format's "unknown enum value
// ⇒ fall back to default" rule.
func ParseName(s string) Name {
	switch Name(s) {
	case PLA, PETG, CUSTOM:
		return Name(s)
	default:
		return PLA
	}
}

// Preset is the (target temperature, duration, overshoot) triple that
// defines a drying cycle.
type Preset struct {
	Temp      float64
	Time      uint32
	Overshoot float64
}

// HeaterCeiling returns the maximum allowed heater temperature implied
// by this preset: target plus overshoot.
func (p Preset) HeaterCeiling() float64 {
	return p.Temp + p.Overshoot
}

// Validate checks the preset against the configured bounds.
func (p Preset) Validate() error {
	if p.Temp < config.MinTemp || p.Temp > config.MaxBoxTemp {
		return fmt.Errorf("%w: temp %.1f out of range [%.1f, %.1f]", ErrOutOfBounds, p.Temp, config.MinTemp, config.MaxBoxTemp)
	}
	if p.Time < config.MinTime || p.Time > config.MaxTime {
		return fmt.Errorf("%w: time %d out of range [%d, %d]", ErrOutOfBounds, p.Time, config.MinTime, config.MaxTime)
	}
	if p.Overshoot < 0 || p.Overshoot > config.DefaultMaxOvershoot {
		return fmt.Errorf("%w: overshoot %.1f out of range [0, %.1f]", ErrOutOfBounds, p.Overshoot, config.DefaultMaxOvershoot)
	}
	if p.HeaterCeiling() > config.MaxHeaterTemp {
		return fmt.Errorf("%w: heater ceiling %.1f exceeds max %.1f", ErrOutOfBounds, p.HeaterCeiling(), config.MaxHeaterTemp)
	}
	return nil
}

// Clamp returns p with each field clamped into its valid range. Used by
// setters that must accept out-of-bounds user input without rejecting
// it outright, per the configuration-out-of-bounds error kind: "rejected
// by setter, clamped to nearest valid value".
func (p Preset) Clamp() Preset {
	clamped := Preset{
		Temp:      clampFloat(p.Temp, config.MinTemp, config.MaxBoxTemp),
		Time:      clampUint32(p.Time, config.MinTime, config.MaxTime),
		Overshoot: clampFloat(p.Overshoot, 0, config.DefaultMaxOvershoot),
	}
	if clamped.HeaterCeiling() > config.MaxHeaterTemp {
		clamped.Overshoot = config.MaxHeaterTemp - clamped.Temp
		if clamped.Overshoot < 0 {
			clamped.Overshoot = 0
		}
	}
	return clamped
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Builtin returns the fixed, non-editable preset for the given name.
// CUSTOM has no builtin definition and is not accepted here.
func Builtin(name Name) (Preset, bool) {
	switch name {
	case PLA:
		return Preset{Temp: 50, Time: 14400, Overshoot: 10}, true
	case PETG:
		return Preset{Temp: 65, Time: 18000, Overshoot: 10}, true
	default:
		return Preset{}, false
	}
}
