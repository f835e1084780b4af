package repo

import (
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

type InMemoryChangeLogRepository struct {
	logs   []models.ChangeLog
	nextID int
}

func NewInMemoryChangeLogRepository() *InMemoryChangeLogRepository {
	return &InMemoryChangeLogRepository{
		logs:   []models.ChangeLog{},
		nextID: 1,
	}
}

func (r *InMemoryChangeLogRepository) add(l models.ChangeLog) {
	l.ID = r.nextID
	r.nextID++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, l)
}

func (r *InMemoryChangeLogRepository) removeByItemID(itemID int) {
	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.ItemID == nil || *l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	r.logs = kept
}

func (r *InMemoryChangeLogRepository) matchesFilter(l models.ChangeLog, f ChangeLogFilter) bool {
	if f.OwnerID != nil && l.OwnerID != *f.OwnerID {
		return false
	}
	if f.ItemID != nil && (l.ItemID == nil || *l.ItemID != *f.ItemID) {
		return false
	}
	if f.FieldChanged != "" && l.FieldChanged != f.FieldChanged {
		return false
	}
	if f.ChangeType != "" && l.ChangeType != f.ChangeType {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(l.ItemName), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func (r *InMemoryChangeLogRepository) Filter(f ChangeLogFilter) ([]models.ChangeLog, int, error) {
	var filtered []models.ChangeLog
	for _, l := range r.logs {
		if r.matchesFilter(l, f) {
			filtered = append(filtered, l)
		}
	}

	descending := f.Descending || f.OrderBy == ""
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if descending {
			a, b = b, a
		}
		if f.OrderBy == "item_name" {
			return a.ItemName < b.ItemName
		}
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.ChangeLog{}, len(filtered), nil
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}
	limit := defaultLogLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = *f.Limit
	}
	end := clamp(start+limit, start, len(filtered))

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryChangeLogRepository) Clear() {
	r.logs = []models.ChangeLog{}
}
