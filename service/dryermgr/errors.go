// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

import "errors"

var (
	// ErrAdjustWhileNotRunning indicates AdjustRemaining was called
	// outside the RUNNING state.
	ErrAdjustWhileNotRunning = errors.New("dryermgr: adjust_remaining requires RUNNING")

	// ErrTooManySubscribers is raised when a stats subscriber is
	// registered past the fixed registry capacity.
	ErrTooManySubscribers = errors.New("dryermgr: too many stats subscribers")
)
