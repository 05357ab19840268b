// SPDX-License-Identifier: BSD-3-Clause

// Package state is a minimal, synchronous finite-state-machine wrapper used
// by the dryer orchestrator to implement its cycle state machine. Guards and
// actions run inline on the calling goroutine; there is no timeout, no retry,
// and no background dispatch, matching the single cooperative loop the
// firmware runs on.
package state
