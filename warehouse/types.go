// Package warehouse holds fixture types whose simple names collide with store.
package warehouse

// Customer is a warehouse account.
type Customer struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Shelf holds stock of one product.
type Shelf struct {
	Code  string         `json:"code"`
	Stock map[string]int `json:"stock"`
	Owner *Customer      `json:"owner,omitempty"`
}
