// SPDX-License-Identifier: BSD-3-Clause

package heater

import "errors"

var (
	// ErrInvalidDutyCycle indicates SetPWM was called with a value
	// outside [0, config.PWMMax].
	ErrInvalidDutyCycle = errors.New("heater: invalid duty cycle")
)
