// SPDX-License-Identifier: BSD-3-Clause

// Package store implements the dryer's persistence layer: a versioned
// durable key/value store over a small flash filesystem, holding user
// settings, a drying-cycle runtime snapshot, and an emergency marker.
//
// Reads are always served from an in-memory cache loaded at Begin;
// writes update the cache first and flush best-effort, so a flash
// write failure degrades gracefully instead of failing the caller.
// Corrupt records are self-healed: an unparseable settings file is
// reformatted with defaults, an unparseable runtime file is deleted.
package store
