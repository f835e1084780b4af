package models

import "time"

// Change-log field and type labels. The synthesizer in internal/audit is the
// only writer of ChangeLog rows.
const (
	FieldQuantity = "quantity"
	FieldPrice    = "price"

	ChangeRestock  = "restock"
	ChangeSale     = "sale"
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
	ChangeDelete   = "delete"
)

// ChangeLog is an immutable audit record of one field change on one item.
// ItemID is nulled by the store when the item is deleted; ItemName keeps the
// trail readable after that.
type ChangeLog struct {
	ID       int    `json:"id"`
	ItemID   *int   `json:"item_id"`
	ItemName string `json:"item_name"`
	// OwnerID is the item's owner at write time. It keeps owner scoping
	// working for terminal entries after ItemID has been nulled.
	OwnerID         int       `json:"-"`
	UserID          int       `json:"user_id"`
	FieldChanged    string    `json:"field_changed"`
	ChangeType      string    `json:"change_type"`
	OldValue        float64   `json:"old_value"`
	NewValue        float64   `json:"new_value"`
	QuantityChanged *int      `json:"quantity_changed,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
