// Package repository defines the storage contract errors shared by the
// concrete implementations and their callers.
package repository

import "errors"

// ErrSnapshotNotFound is returned when no inventory snapshot has been
// persisted yet (first run).
var ErrSnapshotNotFound = errors.New("inventory snapshot not found")
