package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Part is one catalog entry. Readable by anyone; only admins may add parts.
type Part struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	MinOrderQty  int                `bson:"min_order_qty,omitempty" json:"min_order_qty,omitempty"`
	AvailableQty int                `bson:"available_qty,omitempty" json:"available_qty,omitempty"`
}

// PartInput is the admin-submitted body for adding a catalog entry.
type PartInput struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	MinOrderQty  int     `json:"min_order_qty" validate:"nullable,gte=1"`
	AvailableQty int     `json:"available_qty" validate:"nullable,gte=0"`
}
