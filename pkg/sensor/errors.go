// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "errors"

var (
	// ErrOutOfRange indicates a read succeeded at the transport level but
	// returned a value outside the sensor's physical bounds.
	ErrOutOfRange = errors.New("sensor reading out of range")
	// ErrNotConverting indicates Retrieve was called without an
	// outstanding RequestConversion.
	ErrNotConverting = errors.New("no conversion in progress")
	// ErrConversionPending indicates Retrieve was called before the
	// conversion delay elapsed.
	ErrConversionPending = errors.New("conversion not yet ready")
	// ErrTransport indicates a bus-level I/O failure.
	ErrTransport = errors.New("sensor transport error")
)
