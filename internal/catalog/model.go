// Package catalog serves product records sourced from an external
// FakeStore-style API and mirrored into a Mongo collection. The catalog is
// read-only from the storefront's point of view; product data is not
// validated or normalized beyond using the numeric id as the key.
package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

type Rating struct {
	Rate  float64 `bson:"rate" json:"rate"`
	Count int     `bson:"count" json:"count"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID   int                `bson:"productId" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Rating      Rating             `bson:"rating" json:"rating"`
	Stock       int                `bson:"stock" json:"stock"`
}

// Query selects and orders products. Zero values mean "no constraint".
type Query struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Text     string // case-insensitive match on title
	Sort     string // price_asc, price_desc or latest
	Limit    int64  // defaults to 20
	Skip     int64
}
