package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant root: every other entity hangs off a store via
// store_id, and ownership checks resolve against its user_id.
type Store struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
