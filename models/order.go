// models/order.go
package models

import "time"

// Order statuses. Orders are created by checkout and are immutable
// afterwards except for admin status transitions.
const (
	OrderStatusPending   = "pending"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusCancelled = "cancelled"
)

// Order model. Total is in minor currency units (kobo) so commission
// arithmetic stays in integers. First-vs-repeat purchase classification is
// never stored; the ledger engine recomputes it from order history.
type Order struct {
	ID            string    `json:"id" bson:"_id"`
	ProductID     string    `json:"productId" bson:"productId"`
	ProductName   string    `json:"productName" bson:"productName"`
	Quantity      int       `json:"quantity" bson:"quantity"`
	Total         int64     `json:"total" bson:"total"`
	Status        string    `json:"status" bson:"status"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	ReferrerCode  string    `json:"referrerCode,omitempty" bson:"referrerCode,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty" bson:"customerEmail,omitempty"`
	CustomerName  string    `json:"customerName,omitempty" bson:"customerName,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CheckoutRequest is the order creation payload
type CheckoutRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=100"`
	CustomerEmail string `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerName  string `json:"customerName,omitempty"`
	ReferrerCode  string `json:"referrerCode,omitempty"`
}

// OrderStatusRequest is the admin status transition payload
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending fulfilled cancelled"`
}
