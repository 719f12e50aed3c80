package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	StoreID     uuid.UUID  `json:"storeId" db:"store_id"`
	Name        string     `json:"name" db:"name"`
	BillboardID uuid.UUID  `json:"billboardId" db:"billboard_id"`
	Billboard   *Billboard `json:"billboard,omitempty" db:"-"` // For nested responses
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
