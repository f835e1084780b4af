package repo

// ChangeLogFilter narrows change-log listings. OwnerID scopes to logs whose
// item belongs to that owner (nil for admins); deletion terminal entries keep
// following their original owner through the denormalized owner column.
type ChangeLogFilter struct {
	OwnerID      *int
	ItemID       *int
	FieldChanged string
	ChangeType   string
	Search       string // matches item name
	OrderBy      string // created_at, item_name
	Descending   bool
	Offset       *int
	Limit        *int
}

var ChangeLogOrderColumns = map[string]bool{
	"created_at": true,
	"item_name":  true,
}
