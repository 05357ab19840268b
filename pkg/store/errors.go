// SPDX-License-Identifier: BSD-3-Clause

package store

import "errors"

var (
	// ErrNotMounted indicates the underlying filesystem could not be
	// mounted; the store continues operating on in-memory defaults.
	ErrNotMounted = errors.New("store: filesystem not mounted")
	// ErrNotFound indicates the requested file does not exist.
	ErrNotFound = errors.New("store: file not found")
)
