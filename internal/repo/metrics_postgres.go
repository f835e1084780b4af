package repo

import (
	"context"
	"database/sql"
	"time"
)

const lowStockThreshold = 5

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&m.TotalItems)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM change_logs`).Scan(&m.TotalChanges)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE quantity < $1`, lowStockThreshold).Scan(&m.LowStockCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT item_name, COUNT(*) as cnt
		FROM change_logs
		GROUP BY item_name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostChangedItem.Name, &m.MostChangedItem.ChangeCount)

	return m, nil
}
