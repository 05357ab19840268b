// SPDX-License-Identifier: BSD-3-Clause

package sensoragg

import "errors"

var (
	// ErrTooManySubscribers indicates a Subscribe* call exceeded the
	// aggregator's fixed subscriber capacity.
	ErrTooManySubscribers = errors.New("sensoragg: too many subscribers")
)
