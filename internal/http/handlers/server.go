package handlers

import (
	"github.com/rogerio-castellano/inventory-audit/internal/auth"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
)

// DefaultLowStockThreshold is the cutoff used by the low-stock view and the
// alerting hook when the caller does not supply one.
const DefaultLowStockThreshold = 5

var (
	itemRepo     repo.ItemRepository
	categoryRepo repo.CategoryRepository
	changeRepo   repo.ChangeLogRepository
	userRepo     repo.UserRepository
	metricsRepo  repo.MetricsRepository

	refreshStore *auth.RefreshStore
)

func SetItemRepo(r repo.ItemRepository) {
	itemRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetChangeLogRepo(r repo.ChangeLogRepository) {
	changeRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetRefreshStore(s *auth.RefreshStore) {
	refreshStore = s
}
