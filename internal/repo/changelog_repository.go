package repo

import "github.com/rogerio-castellano/inventory-audit/internal/models"

// ChangeLogRepository is read-only: entries are written exclusively through
// the item repository's transactional mutation methods.
type ChangeLogRepository interface {
	Filter(f ChangeLogFilter) ([]models.ChangeLog, int, error)
}
