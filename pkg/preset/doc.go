// SPDX-License-Identifier: BSD-3-Clause

// Package preset defines the drying presets the orchestrator selects
// between: the fixed PLA and PETG profiles, and a user-editable CUSTOM
// slot. A preset is the (target temperature, duration, overshoot)
// triple that the PID controller and safety monitor are configured
// from.
package preset
