package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lives in exactly two states: created (is_paid = false) and paid.
// The paid flag is flipped only by the payment gateway webhook.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StoreID   uuid.UUID `json:"storeId" db:"store_id"`
	IsPaid    bool      `json:"isPaid" db:"is_paid"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	OrderItems []*OrderItem `json:"orderItems,omitempty" db:"-"`
}

// Total sums the price snapshots of the order's items.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.OrderItems {
		total += item.ProductPrice
	}
	return total
}
