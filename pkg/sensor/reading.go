// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "time"

// Reading is a cached sensor value with its timestamp and validity.
type Reading struct {
	Value     float64
	Timestamp time.Time
	Valid     bool
}

// failureTracker counts consecutive read failures and derives validity
// from a configurable threshold, shared by every sensor implementation
// in this package.
type failureTracker struct {
	threshold           int
	consecutiveFailures int
	valid               bool
	lastErr             error
}

func newFailureTracker(threshold int) failureTracker {
	return failureTracker{threshold: threshold, valid: true}
}

// recordSuccess clears the failure count and marks the sensor valid.
func (f *failureTracker) recordSuccess() {
	f.consecutiveFailures = 0
	f.valid = true
	f.lastErr = nil
}

// recordFailure increments the failure count and returns true once the
// sensor has crossed into invalid territory.
func (f *failureTracker) recordFailure(err error) (becameInvalid bool) {
	f.lastErr = err
	f.consecutiveFailures++
	if f.consecutiveFailures >= f.threshold && f.valid {
		f.valid = false
		return true
	}
	if f.consecutiveFailures >= f.threshold {
		return false
	}
	return false
}

func (f *failureTracker) isValid() bool  { return f.valid }
func (f *failureTracker) lastError() error { return f.lastErr }
