package repo

import "time"

// ItemFilter narrows and orders item listings. OwnerID is the visibility
// scope from the access policy: nil means unrestricted (admin).
type ItemFilter struct {
	OwnerID    *int
	CategoryID *int
	Search     string // matches item name and category name
	MinPrice   *float64
	MaxPrice   *float64
	MinQty     *int
	MaxQty     *int
	AddedSince *time.Time
	AddedUntil *time.Time
	OrderBy    string // name, quantity, price, date_added
	Descending bool
	Offset     *int
	Limit      *int
}

// ItemOrderColumns are the orderings a caller may request; anything else
// falls back to id.
var ItemOrderColumns = map[string]bool{
	"name":       true,
	"quantity":   true,
	"price":      true,
	"date_added": true,
}
