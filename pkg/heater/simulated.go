// SPDX-License-Identifier: BSD-3-Clause

package heater

import (
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
)

// Simulated is a Driver that tracks its own state without touching any
// hardware, used by tests and by cmd/dryerd's bench demonstration.
type Simulated struct {
	running bool
	duty    uint8
}

// NewSimulated creates a simulated heater driver, initially stopped at
// 0% duty cycle.
func NewSimulated() *Simulated {
	return &Simulated{}
}

func (s *Simulated) Begin(now time.Time) error { return nil }

func (s *Simulated) Start(now time.Time) error {
	s.running = true
	return nil
}

func (s *Simulated) Stop(now time.Time) error {
	s.running = false
	return nil
}

func (s *Simulated) EmergencyStop() {
	s.running = false
	s.duty = 0
}

func (s *Simulated) SetPWM(dutyPercent uint8) error {
	if dutyPercent > config.PWMMax {
		return ErrInvalidDutyCycle
	}
	s.duty = dutyPercent
	return nil
}

func (s *Simulated) IsRunning() bool { return s.running }
func (s *Simulated) CurrentPWM() uint8 { return s.duty }
