// SPDX-License-Identifier: BSD-3-Clause

// Package dryermgr implements the dryer orchestrator: the cycle state
// machine, per-tick coordination of the sensor aggregator, PID
// controller, safety monitor, heater driver, and persistence store,
// and the command/stats surface the UI drives and observes.
//
// Orchestrator owns every collaborator exclusively and is driven by a
// single Tick(now) call per cooperative-loop iteration; nothing inside
// it spawns a goroutine or blocks on a timeout.
package dryermgr
