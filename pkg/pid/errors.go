// SPDX-License-Identifier: BSD-3-Clause

package pid

import "errors"

var (
	// ErrInvalidLimits indicates SetLimits was called with lo > hi.
	ErrInvalidLimits = errors.New("invalid output limits")
)
