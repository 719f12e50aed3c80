package models

import (
	"time"

	"github.com/google/uuid"
)

type Billboard struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StoreID   uuid.UUID `json:"storeId" db:"store_id"`
	Label     string    `json:"label" db:"label"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
