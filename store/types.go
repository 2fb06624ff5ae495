// Package store holds the fixture types described by the analyzer tests.
package store

import (
	"time"
)

// Product represents an individual item available for sale.
type Product struct {
	ID         int64     `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Address *string `json:"address"`
}

// Order represents a transaction made by a customer.
type Order struct {
	ID         int64                `json:"id"`
	Customer   *Customer            `json:"customer"`
	Status     OrderStatus          `json:"status"`
	Items      []OrderItem          `json:"items"`
	Attributes map[string]any       `json:"attributes"`
	History    Page[OrderStatus]    `json:"history"`
	Lines      Lookup[int64, *Line] `json:"lines"`
	OrderedAt  time.Time            `json:"ordered_at"`
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Line is a priced order line.
type Line struct {
	Item      OrderItem `json:"item"`
	UnitPrice int64     `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusPaid    OrderStatus = "PAID"
)

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items []T      `json:"items"`
	Next  *Page[T] `json:"next,omitempty"`
}

// Lookup indexes values by key.
type Lookup[K comparable, V any] map[K]V

// Category is a node of the product category tree.
type Category struct {
	Name     string      `json:"name"`
	Parent   *Category   `json:"parent,omitempty"`
	Children []*Category `json:"children"`
}

// Notifier is called when an order changes status.
type Notifier func(order *Order, from, to OrderStatus) error

// unexported types are not described.
type cursor struct {
	offset int
}
