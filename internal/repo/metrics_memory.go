package repo

type InMemoryMetricsRepository struct {
	itemRepo *InMemoryItemRepository
	logRepo  *InMemoryChangeLogRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(itemRepo *InMemoryItemRepository, logRepo *InMemoryChangeLogRepository) {
	r.itemRepo = itemRepo
	r.logRepo = logRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (r *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{TotalItems: len(r.itemRepo.items)}

	for _, it := range r.itemRepo.items {
		if it.Quantity < lowStockThreshold {
			m.LowStockCount++
		}
	}

	changesPerItem := make(map[string]int)
	for _, l := range r.logRepo.logs {
		m.TotalChanges++
		changesPerItem[l.ItemName]++
	}
	for name, count := range changesPerItem {
		if count > m.MostChangedItem.ChangeCount {
			m.MostChangedItem.Name = name
			m.MostChangedItem.ChangeCount = count
		}
	}

	return m, nil
}
