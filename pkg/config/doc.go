// SPDX-License-Identifier: BSD-3-Clause

// Package config collects the timing and limit constants shared by the
// dryer core: sensor scheduling intervals, temperature and duration
// bounds, and PWM limits. They are grouped here because most of them
// are shared across packages (pkg/pid, pkg/safety, pkg/sensor,
// pkg/sensoragg, pkg/preset, service/dryermgr) and drifting
// copies of the same constant is how firmware gets its safety margins
// wrong.
package config
