package domain

import "time"

// Entity provides common fields for stored records.
// It gets embedded in any domain type the store persists.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	// Seq is a store-assigned monotonic sequence used to list
	// entities in insertion order regardless of key ordering.
	Seq uint64 `json:"seq"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (e *Entity) InitTimestamps() {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
}
