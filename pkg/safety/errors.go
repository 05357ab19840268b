// SPDX-License-Identifier: BSD-3-Clause

package safety

import "errors"

var (
	// ErrTooManySubscribers indicates Subscribe was called beyond the
	// monitor's fixed subscriber capacity.
	ErrTooManySubscribers = errors.New("safety: too many emergency subscribers")
)
