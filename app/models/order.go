package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is a purchase of one part. Ownership is the email field matching the
// verified identity's email, compared case-sensitively.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	PartID        string             `bson:"part_id,omitempty" json:"part_id,omitempty"`
	PartName      string             `bson:"part_name,omitempty" json:"part_name,omitempty"`
	Qty           int                `bson:"qty,omitempty" json:"qty,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// OrderInput is the client-submitted body for placing an order.
type OrderInput struct {
	Email    string  `json:"email" validate:"required,email"`
	PartID   string  `json:"part_id"`
	PartName string  `json:"part_name"`
	Qty      int     `json:"qty" validate:"nullable,gte=1"`
	Price    float64 `json:"price" validate:"nullable,gt=0"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
}

// Payment records a completed charge against an order. Append-only; the
// only link back to the order is the client-supplied identifiers.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Amount        float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
