// SPDX-License-Identifier: BSD-3-Clause

package preset

import "errors"

var (
	// ErrOutOfBounds indicates a preset field fell outside its configured
	// valid range.
	ErrOutOfBounds = errors.New("preset value out of bounds")
	// ErrUnknownPreset indicates a preset name with no builtin definition
	// was requested where one was required.
	ErrUnknownPreset = errors.New("unknown preset")
)
