package order

import (
	"shopyz-be/internal/cart"
	"shopyz-be/internal/pricing"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Order is a submitted purchase. Items and Total are frozen at submission.
type Order struct {
	ID             string                 `json:"id,omitempty"`
	Name           string                 `json:"name"`
	Phone          string                 `json:"phone"`
	Wilaya         string                 `json:"wilaya"`
	Commune        string                 `json:"commune"`
	Address        string                 `json:"address"`
	Total          string                 `json:"total"`
	Items          []cart.Item            `json:"items"`
	Date           int64                  `json:"date"`
	Status         Status                 `json:"status"`
	DeliveryMethod pricing.DeliveryMethod `json:"deliveryMethod,omitempty"`
	Shipping       string                 `json:"shipping,omitempty"`
}

// Stats summarises the orders mirror for the admin dashboard.
type Stats struct {
	Orders  int   `json:"orders"`
	Revenue int64 `json:"revenue"`
}
