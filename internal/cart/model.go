// Package cart implements the authoritative per-user shopping cart: one
// Mongo document per user, mutated by read-modify-write service calls.
package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one product line inside a cart. ProductID is the numeric key of
// the external catalog product; it is unique within a cart's item list.
// Quantity is always >= 1 while the line exists.
type Item struct {
	ProductID int     `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Cart is the persisted document. At most one exists per user, enforced by
// a unique index on userId.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []Item             `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
