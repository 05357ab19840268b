// SPDX-License-Identifier: BSD-3-Clause

package heater

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/filamentdry/dryercore/pkg/config"
)

// GPIOPWM is a Driver that realizes the duty cycle as a software PWM
// signal on a periph.io GPIO pin capable of it (e.g. a solid-state
// relay or MOSFET gate driving the heating element).
type GPIOPWM struct {
	pin       gpio.PinOut
	frequency physic.Frequency

	running bool
	duty    uint8
}

// NewGPIOPWM creates a heater driver on the given pin, running the PWM
// signal at the given frequency. A few hundred hertz is typical for a
// resistive heating element behind a solid-state relay.
func NewGPIOPWM(pin gpio.PinOut, frequency physic.Frequency) *GPIOPWM {
	return &GPIOPWM{pin: pin, frequency: frequency}
}

func (g *GPIOPWM) Begin(now time.Time) error {
	return g.pin.Out(gpio.Low)
}

func (g *GPIOPWM) Start(now time.Time) error {
	g.running = true
	return g.apply()
}

func (g *GPIOPWM) Stop(now time.Time) error {
	g.running = false
	return g.pin.Out(gpio.Low)
}

func (g *GPIOPWM) EmergencyStop() {
	g.running = false
	g.duty = 0
	_ = g.pin.Out(gpio.Low)
}

func (g *GPIOPWM) SetPWM(dutyPercent uint8) error {
	if dutyPercent > config.PWMMax {
		return ErrInvalidDutyCycle
	}
	g.duty = dutyPercent
	if g.running {
		return g.apply()
	}
	return nil
}

func (g *GPIOPWM) IsRunning() bool   { return g.running }
func (g *GPIOPWM) CurrentPWM() uint8 { return g.duty }

// apply pushes the current duty cycle to the pin, scaling the [0, 100]
// percentage into gpio's [0, DutyMax] fixed-point range.
func (g *GPIOPWM) apply() error {
	if g.duty == 0 {
		return g.pin.Out(gpio.Low)
	}
	duty := gpio.Duty(int64(gpio.DutyMax) * int64(g.duty) / int64(config.PWMMax))
	return g.pin.PWM(duty, g.frequency)
}
