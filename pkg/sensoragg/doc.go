// SPDX-License-Identifier: BSD-3-Clause

// Package sensoragg schedules heater and chamber sensor reads at
// independent intervals and dispatches push notifications on fresh
// data and on errors. It owns the heater sensor's asynchronous
// request/poll/retrieve state machine so callers never see the
// in-flight conversion directly.
package sensoragg
