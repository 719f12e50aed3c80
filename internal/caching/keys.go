package caching

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind names the entity family a cache key belongs to.
type Kind string

const (
	KindBillboard Kind = "billboard"
	KindCategory  Kind = "category"
	KindSize      Kind = "size"
	KindColor     Kind = "color"
	KindProduct   Kind = "product"
	KindDashboard Kind = "dashboard"
)

// Key addresses one cached value. A key without an entity ID is a list key
// (all entities of a kind for a store); with an ID it is a detail key.
type Key struct {
	Kind    Kind
	StoreID uuid.UUID
	ID      uuid.UUID
}

// ListKey builds the list key for a kind scoped to a store.
func ListKey(kind Kind, storeID uuid.UUID) Key {
	return Key{Kind: kind, StoreID: storeID}
}

// DetailKey builds the detail key for one entity of a kind.
func DetailKey(kind Kind, storeID, id uuid.UUID) Key {
	return Key{Kind: kind, StoreID: storeID, ID: id}
}

func (k Key) IsList() bool {
	return k.ID == uuid.Nil
}

func (k Key) String() string {
	if k.IsList() {
		return fmt.Sprintf("storeadmin:%s:%s", k.Kind, k.StoreID.String())
	}
	return fmt.Sprintf("storeadmin:%s:%s:%s", k.Kind, k.StoreID.String(), k.ID.String())
}
