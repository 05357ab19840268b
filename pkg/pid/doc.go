// SPDX-License-Identifier: BSD-3-Clause

// Package pid implements the chamber-temperature controller: a
// proportional-integral-derivative loop with anti-windup, derivative
// filtering, predictive cooling-rate compensation, and a two-phase
// dynamic heater ceiling that protects the heating element itself.
//
// The controller treats chamber temperature as the sole process
// variable; heater temperature is consulted only to compute the output
// ceiling in Step. It is not a generic PID library — the cooling
// prediction and ceiling scaling need access to intermediate terms a
// reusable controller would hide, so the math is hand-rolled in the
// shape of a small single-purpose state machine instead.
package pid
