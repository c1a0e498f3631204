// models/product.go
package models

import "time"

// Product model. Price is in minor currency units. Whitelisted controls
// public catalog visibility.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Type        string    `json:"type" bson:"type"`
	Price       int64     `json:"price" bson:"price"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Whitelisted bool      `json:"whitelisted" bson:"whitelisted"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductRequest is the admin create/update payload
type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Price       int64  `json:"price" validate:"required,min=0"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Whitelisted bool   `json:"whitelisted"`
}
