package repo

import (
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository.
// It shares an InMemoryChangeLogRepository so the handler test suites can
// observe the entries written alongside each mutation.
type InMemoryItemRepository struct {
	items  []models.InventoryItem
	nextID int

	logs       *InMemoryChangeLogRepository
	categories *InMemoryCategoryRepository
}

// NewInMemoryItemRepository creates a new instance of InMemoryItemRepository.
func NewInMemoryItemRepository(logs *InMemoryChangeLogRepository) *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  []models.InventoryItem{},
		nextID: 1,
		logs:   logs,
	}
}

// SetCategoryRepository wires the category repository used to resolve
// category names for search filtering.
func (r *InMemoryItemRepository) SetCategoryRepository(categories *InMemoryCategoryRepository) {
	r.categories = categories
}

func (r *InMemoryItemRepository) CreateWithLogs(item models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error) {
	item.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	item.DateAdded = now
	item.LastUpdated = now
	r.items = append(r.items, item)
	for _, l := range logs {
		id := item.ID
		l.ItemID = &id
		r.logs.add(l)
	}
	return item, nil
}

func (r *InMemoryItemRepository) GetByID(id int) (models.InventoryItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.InventoryItem{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) UpdateWithLogs(item models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error) {
	for i, it := range r.items {
		if it.ID == item.ID {
			item.DateAdded = it.DateAdded
			item.LastUpdated = time.Now().UTC()
			r.items[i] = item
			for _, l := range logs {
				r.logs.add(l)
			}
			return item, nil
		}
	}
	return models.InventoryItem{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) DeleteWithLogs(id int, logs []models.ChangeLog) error {
	for i, it := range r.items {
		if it.ID == id {
			// Mirror the FK behavior: terminal entries keep a nulled item
			// reference, earlier entries for the item are removed.
			r.logs.removeByItemID(id)
			for _, l := range logs {
				l.ItemID = nil
				r.logs.add(l)
			}
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryItemRepository) categoryName(categoryID *int) string {
	if categoryID == nil || r.categories == nil {
		return ""
	}
	c, err := r.categories.GetByID(*categoryID)
	if err != nil {
		return ""
	}
	return c.Name
}

func (r *InMemoryItemRepository) matchesFilter(it models.InventoryItem, f ItemFilter) bool {
	if f.OwnerID != nil && it.UserID != *f.OwnerID {
		return false
	}
	if f.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		name := strings.ToLower(it.Name)
		category := strings.ToLower(r.categoryName(it.CategoryID))
		if !strings.Contains(name, needle) && (category == "" || !strings.Contains(category, needle)) {
			return false
		}
	}
	if f.MinPrice != nil && it.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && it.Price > *f.MaxPrice {
		return false
	}
	if f.MinQty != nil && it.Quantity < *f.MinQty {
		return false
	}
	if f.MaxQty != nil && it.Quantity > *f.MaxQty {
		return false
	}
	if f.AddedSince != nil && it.DateAdded.Before(*f.AddedSince) {
		return false
	}
	if f.AddedUntil != nil && it.DateAdded.After(*f.AddedUntil) {
		return false
	}
	return true
}

func (r *InMemoryItemRepository) Filter(f ItemFilter) ([]models.InventoryItem, int, error) {
	var filtered []models.InventoryItem
	for _, it := range r.items {
		if r.matchesFilter(it, f) {
			filtered = append(filtered, it)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if f.Descending {
			a, b = b, a
		}
		switch f.OrderBy {
		case "name":
			return a.Name < b.Name
		case "quantity":
			return a.Quantity < b.Quantity
		case "price":
			return a.Price < b.Price
		case "date_added":
			return a.DateAdded.Before(b.DateAdded)
		default:
			return a.ID < b.ID
		}
	})

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.InventoryItem{}, len(filtered), nil
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if f.Limit != nil && *f.Limit > 0 {
		end = clamp(start+*f.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryItemRepository) LowStock(ownerID *int, threshold int) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, it := range r.items {
		if it.Quantity >= threshold {
			continue
		}
		if ownerID != nil && it.UserID != *ownerID {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (r *InMemoryItemRepository) Clear() {
	r.items = []models.InventoryItem{}
}
