package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrEmptyKey is returned by write operations when the item has no
	// stable identifier. Lookups for an empty key report a plain miss
	// instead, since a miss is the useful answer for the caller.
	ErrEmptyKey = errors.New("annotation key cannot be empty")

	// ErrStoreClosed is returned by write operations after Close.
	ErrStoreClosed = errors.New("annotation store is closed")
)
