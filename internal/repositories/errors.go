package repositories

import "errors"

// Classified persistence errors. Components above this layer never see raw
// driver errors; they branch on these.
var (
	// ErrConflict is returned when an insert violates a uniqueness
	// constraint (duplicate WhatsApp number).
	ErrConflict = errors.New("record already exists")

	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
)
