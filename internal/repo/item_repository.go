package repo

import "github.com/rogerio-castellano/inventory-audit/internal/models"

// ItemRepository defines the interface for inventory item data operations.
// The mutation methods take the change-log entries synthesized for that
// mutation and persist both in a single transaction: if the log write fails,
// the item mutation must not be observable.
type ItemRepository interface {
	CreateWithLogs(item models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error)
	GetByID(id int) (models.InventoryItem, error)
	UpdateWithLogs(item models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error)
	// DeleteWithLogs writes the terminal entries, removes the item's other
	// log entries and then the item itself. The terminal entries survive with
	// their item reference nulled.
	DeleteWithLogs(id int, logs []models.ChangeLog) error
	Filter(f ItemFilter) ([]models.InventoryItem, int, error)
	// LowStock returns items with quantity strictly below threshold, scoped
	// to ownerID when non-nil.
	LowStock(ownerID *int, threshold int) ([]models.InventoryItem, error)
}
