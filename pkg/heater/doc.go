// SPDX-License-Identifier: BSD-3-Clause

// Package heater fixes the heater driver contract the dryer
// orchestrator consumes — begin, start, stop, emergency_stop, set_pwm,
// is_running, current_pwm — and ships a periph.io GPIO-backed software
// PWM driver plus a simulated driver for tests.
package heater
