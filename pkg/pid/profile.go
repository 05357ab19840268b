// SPDX-License-Identifier: BSD-3-Clause

package pid

// ProfileName identifies one of the three built-in tuning profiles.
type ProfileName string

const (
	SOFT   ProfileName = "SOFT"
	NORMAL ProfileName = "NORMAL"
	STRONG ProfileName = "STRONG"
)

// ParseProfileName parses a persisted profile name, falling back to
// NORMAL for any unrecognized value per the external file format's
// "unknown enum value ⇒ fall back to default" rule.
func ParseProfileName(s string) ProfileName {
	switch ProfileName(s) {
	case SOFT, NORMAL, STRONG:
		return ProfileName(s)
	default:
		return NORMAL
	}
}

// Gains holds the three PID tuning constants.
type Gains struct {
	Kp, Ki, Kd float64
}

// profiles maps each built-in profile name to its literal gain triple.
// SOFT trades speed for minimal overshoot, STRONG trades overshoot
// risk for faster approach, NORMAL sits between the two.
var profiles = map[ProfileName]Gains{
	SOFT:   {Kp: 2.5, Ki: 0.015, Kd: 8.0},
	NORMAL: {Kp: 4.0, Ki: 0.03, Kd: 12.0},
	STRONG: {Kp: 6.5, Ki: 0.06, Kd: 18.0},
}

// GainsFor returns the literal gain triple for a built-in profile name.
func GainsFor(name ProfileName) Gains {
	if g, ok := profiles[name]; ok {
		return g
	}
	return profiles[NORMAL]
}
