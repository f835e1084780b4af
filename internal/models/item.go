package models

import "time"

// InventoryItem represents the stock of one good, owned by a single user.
// Quantity and price are never negative; DateAdded is immutable once set.
type InventoryItem struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CategoryID  *int      `json:"category_id,omitempty"`
	DateAdded   time.Time `json:"date_added"`
	LastUpdated time.Time `json:"last_updated"`
}
