// Package audit derives change-log entries from before/after snapshots of an
// inventory item. It is the single source of truth for what counts as an
// auditable change; repositories persist whatever it returns, inside the same
// transaction as the item mutation.
package audit

import (
	"math"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

// priceEqual compares prices at two fraction digits. Prices are stored as
// numeric(10,2); anything below half a cent is a no-op write.
func priceEqual(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}

func quantityEntry(item models.InventoryItem, actorID int, changeType string, oldQty, newQty int) models.ChangeLog {
	delta := newQty - oldQty
	id := item.ID
	return models.ChangeLog{
		ItemID:          &id,
		ItemName:        item.Name,
		OwnerID:         item.UserID,
		UserID:          actorID,
		FieldChanged:    models.FieldQuantity,
		ChangeType:      changeType,
		OldValue:        float64(oldQty),
		NewValue:        float64(newQty),
		QuantityChanged: &delta,
	}
}

func priceEntry(item models.InventoryItem, actorID int, changeType string, oldPrice, newPrice float64) models.ChangeLog {
	id := item.ID
	return models.ChangeLog{
		ItemID:       &id,
		ItemName:     item.Name,
		OwnerID:      item.UserID,
		UserID:       actorID,
		FieldChanged: models.FieldPrice,
		ChangeType:   changeType,
		OldValue:     oldPrice,
		NewValue:     newPrice,
	}
}

// OnCreate returns the entries for a freshly created item: an initial restock
// when quantity > 0 and an initial price increase when price > 0. Creating an
// empty item records nothing.
func OnCreate(item models.InventoryItem, actorID int) []models.ChangeLog {
	var entries []models.ChangeLog
	if item.Quantity > 0 {
		entries = append(entries, quantityEntry(item, actorID, models.ChangeRestock, 0, item.Quantity))
	}
	if item.Price > 0 {
		entries = append(entries, priceEntry(item, actorID, models.ChangeIncrease, 0, item.Price))
	}
	return entries
}

// OnUpdate diffs two snapshots of the same item field by field. An unchanged
// field emits nothing; a single update yields zero, one or two entries, the
// quantity entry always ahead of the price entry.
func OnUpdate(old, updated models.InventoryItem, actorID int) []models.ChangeLog {
	var entries []models.ChangeLog
	if updated.Quantity != old.Quantity {
		changeType := models.ChangeSale
		if updated.Quantity > old.Quantity {
			changeType = models.ChangeRestock
		}
		entries = append(entries, quantityEntry(updated, actorID, changeType, old.Quantity, updated.Quantity))
	}
	if !priceEqual(updated.Price, old.Price) {
		changeType := models.ChangeDecrease
		if updated.Price > old.Price {
			changeType = models.ChangeIncrease
		}
		entries = append(entries, priceEntry(updated, actorID, changeType, old.Price, updated.Price))
	}
	return entries
}

// OnDelete returns the terminal entries for an item about to be removed: one
// per field that is currently non-zero, closing it out at zero. These must be
// written before the item row goes away.
func OnDelete(item models.InventoryItem, actorID int) []models.ChangeLog {
	var entries []models.ChangeLog
	if item.Quantity > 0 {
		entries = append(entries, quantityEntry(item, actorID, models.ChangeDelete, item.Quantity, 0))
	}
	if item.Price > 0 {
		entries = append(entries, priceEntry(item, actorID, models.ChangeDelete, item.Price, 0))
	}
	return entries
}
