package models

import (
	"github.com/google/uuid"
)

// OrderItem links an order to a product. ProductName and ProductPrice are
// populated from the joined product row when items are loaded.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`

	ProductName  string  `json:"productName,omitempty" db:"-"`
	ProductPrice float64 `json:"productPrice,omitempty" db:"-"`
}
