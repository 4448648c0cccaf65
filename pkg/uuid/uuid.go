// Package uuid provides time-ordered identifiers for audit rows.
// UUID v7 is sortable by timestamp (better for database indexes than v4).
package uuid

import (
	guuid "github.com/google/uuid"
)

// UUID represents a UUID v7 identifier.
type UUID = guuid.UUID

// NewV7 generates a new UUID v7.
// Falls back to a random v4 only if the clock source fails, which google/uuid
// reports as an error rather than panicking.
func NewV7() UUID {
	id, err := guuid.NewV7()
	if err != nil {
		return guuid.New()
	}
	return id
}

// NewString returns a fresh UUID v7 in canonical string form.
func NewString() string {
	return NewV7().String()
}
