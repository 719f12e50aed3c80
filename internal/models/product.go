package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilter holds the query-string filters the storefront list accepts.
type ProductFilter struct {
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	IsFeatured *bool      `json:"isFeatured,omitempty"`
	IsArchived *bool      `json:"isArchived,omitempty"`
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}

type Product struct {
	ID         uuid.UUID `json:"id" db:"id"`
	StoreID    uuid.UUID `json:"storeId" db:"store_id"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	IsFeatured bool      `json:"isFeatured" db:"is_featured"`
	IsArchived bool      `json:"isArchived" db:"is_archived"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Relations loaded for nested responses
	Category *Category       `json:"category,omitempty" db:"-"`
	Sizes    []*Size         `json:"sizes,omitempty" db:"-"`
	Colors   []*Color        `json:"colors,omitempty" db:"-"`
	Images   []*ProductImage `json:"images,omitempty" db:"-"`
}
