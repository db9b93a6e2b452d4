package domain

import "time"

// CreatedAtPrecision is the resolution creation timestamps are stored at.
// Every backend round-trips millisecond values exactly.
const CreatedAtPrecision = time.Millisecond

// Todo is a single short text record.
//
// ID is assigned by the store and never reused. CreatedAt is set once at
// creation and is the sort key for listings. Only Title and Description
// change after creation.
type Todo struct {
	ID          string
	Title       string
	Description string // Opaque editor markup (HTML), stored as-is
	CreatedAt   time.Time
}

// NewCreatedAt returns the creation timestamp for a record created now.
func NewCreatedAt() time.Time {
	return time.Now().UTC().Truncate(CreatedAtPrecision)
}
