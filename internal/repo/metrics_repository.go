package repo

type MostChangedItem struct {
	Name        string `json:"name"`
	ChangeCount int    `json:"change_count"`
}

type Metrics struct {
	TotalItems      int             `json:"total_items"`
	TotalChanges    int             `json:"total_changes"`
	LowStockCount   int             `json:"low_stock_count"`
	MostChangedItem MostChangedItem `json:"most_changed_item"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
