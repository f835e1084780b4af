package models

import "time"

// Category is a global, admin-managed tag. Deleting one never cascades to
// items; their category reference is cleared instead.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
