package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

type PostgresChangeLogRepository struct {
	db *sql.DB
}

func NewPostgresChangeLogRepository(db *sql.DB) *PostgresChangeLogRepository {
	return &PostgresChangeLogRepository{db: db}
}

const defaultLogLimit = 100

func (r *PostgresChangeLogRepository) Filter(f ChangeLogFilter) ([]models.ChangeLog, int, error) {
	conditions, args, argIdx := changeLogFilterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM change_logs WHERE 1=1` + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count change logs: %w", err)
	}

	query := `SELECT id, item_id, item_name, owner_id, user_id, field_changed, change_type, old_value, new_value, quantity_changed, created_at
		FROM change_logs WHERE 1=1` + conditions

	// Newest first by default; the audit views always read in that order.
	orderBy := "created_at"
	if ChangeLogOrderColumns[f.OrderBy] {
		orderBy = f.OrderBy
	}
	query += " ORDER BY " + orderBy
	if f.Descending || f.OrderBy == "" {
		query += " DESC"
	}
	query += ", id DESC"

	// The default page is capped; explicit limits (e.g. exports) are honored.
	limit := defaultLogLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = *f.Limit
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query change logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ChangeLog
	for rows.Next() {
		var l models.ChangeLog
		var itemID sql.NullInt64
		var delta sql.NullInt64
		err := rows.Scan(&l.ID, &itemID, &l.ItemName, &l.OwnerID, &l.UserID, &l.FieldChanged, &l.ChangeType, &l.OldValue, &l.NewValue, &delta, &l.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		if itemID.Valid {
			id := int(itemID.Int64)
			l.ItemID = &id
		}
		if delta.Valid {
			d := int(delta.Int64)
			l.QuantityChanged = &d
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, totalCount, nil
}

func changeLogFilterConditions(f ChangeLogFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, *f.OwnerID)
		argIdx++
	}
	if f.ItemID != nil {
		query += fmt.Sprintf(" AND item_id = $%d", argIdx)
		args = append(args, *f.ItemID)
		argIdx++
	}
	if f.FieldChanged != "" {
		query += fmt.Sprintf(" AND field_changed = $%d", argIdx)
		args = append(args, f.FieldChanged)
		argIdx++
	}
	if f.ChangeType != "" {
		query += fmt.Sprintf(" AND change_type = $%d", argIdx)
		args = append(args, f.ChangeType)
		argIdx++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND item_name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}

	return query, args, argIdx
}
