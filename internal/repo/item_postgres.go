package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/rogerio-castellano/inventory-audit/internal/models"
)

type PostgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

const itemColumns = `i.id, i.user_id, i.name, i.description, i.quantity, i.price, i.category_id, i.date_added, i.last_updated`

func scanItem(row interface{ Scan(...any) error }) (models.InventoryItem, error) {
	var it models.InventoryItem
	var description sql.NullString
	var categoryID sql.NullInt64
	err := row.Scan(&it.ID, &it.UserID, &it.Name, &description, &it.Quantity, &it.Price, &categoryID, &it.DateAdded, &it.LastUpdated)
	if err != nil {
		return models.InventoryItem{}, err
	}
	it.Description = description.String
	if categoryID.Valid {
		id := int(categoryID.Int64)
		it.CategoryID = &id
	}
	return it, nil
}

// insertLogTx writes one change-log entry inside the caller's transaction.
func insertLogTx(ctx context.Context, tx *sql.Tx, l models.ChangeLog) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO change_logs (item_id, item_name, owner_id, user_id, field_changed, change_type, old_value, new_value, quantity_changed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ItemID, l.ItemName, l.OwnerID, l.UserID, l.FieldChanged, l.ChangeType, l.OldValue, l.NewValue, l.QuantityChanged, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert change log: %w", err)
	}
	return nil
}

func (r *PostgresItemRepository) CreateWithLogs(p models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	p.DateAdded = now
	p.LastUpdated = now
	err = tx.QueryRowContext(ctx, `
		INSERT INTO items (user_id, name, description, quantity, price, category_id, date_added, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.UserID, p.Name, p.Description, p.Quantity, p.Price, p.CategoryID, p.DateAdded, p.LastUpdated,
	).Scan(&p.ID)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return models.InventoryItem{}, ErrDuplicatedValueUnique
		}
		if strings.Contains(err.Error(), "items_quantity_check") {
			return models.InventoryItem{}, ErrNegativeQuantity
		}
		return models.InventoryItem{}, fmt.Errorf("insert item: %w", err)
	}

	for _, l := range logs {
		l.ItemID = &p.ID
		if err := insertLogTx(ctx, tx, l); err != nil {
			return models.InventoryItem{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.InventoryItem{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func (r *PostgresItemRepository) GetByID(id int) (models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items i WHERE i.id = $1`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return it, err
}

func (r *PostgresItemRepository) UpdateWithLogs(p models.InventoryItem, logs []models.ChangeLog) (models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	p.LastUpdated = time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE items SET name = $1, description = $2, quantity = $3, price = $4, category_id = $5, last_updated = $6
		WHERE id = $7`,
		p.Name, p.Description, p.Quantity, p.Price, p.CategoryID, p.LastUpdated, p.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "items_quantity_check") {
			return models.InventoryItem{}, ErrNegativeQuantity
		}
		return models.InventoryItem{}, fmt.Errorf("update item: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.InventoryItem{}, ErrItemNotFound
	}

	for _, l := range logs {
		if err := insertLogTx(ctx, tx, l); err != nil {
			return models.InventoryItem{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.InventoryItem{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func (r *PostgresItemRepository) DeleteWithLogs(id int, logs []models.ChangeLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Terminal entries go in first, then the item's earlier entries are
	// removed, then the item itself. The FK nulls item_id on the terminal
	// rows so they survive the delete. Log IDs are serial, so every
	// pre-existing entry sits below the first terminal ID.
	firstTerminalID := 0
	for _, l := range logs {
		var logID int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO change_logs (item_id, item_name, owner_id, user_id, field_changed, change_type, old_value, new_value, quantity_changed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			l.ItemID, l.ItemName, l.OwnerID, l.UserID, l.FieldChanged, l.ChangeType, l.OldValue, l.NewValue, l.QuantityChanged, time.Now().UTC(),
		).Scan(&logID)
		if err != nil {
			return fmt.Errorf("insert terminal change log: %w", err)
		}
		if firstTerminalID == 0 {
			firstTerminalID = logID
		}
	}

	if firstTerminalID > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM change_logs WHERE item_id = $1 AND id < $2`, id, firstTerminalID)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM change_logs WHERE item_id = $1`, id)
	}
	if err != nil {
		return fmt.Errorf("delete change logs: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return tx.Commit()
}

func (r *PostgresItemRepository) Filter(f ItemFilter) ([]models.InventoryItem, int, error) {
	conditions, args, argIdx := itemFilterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	countQuery := `SELECT COUNT(*) FROM items i LEFT JOIN categories c ON i.category_id = c.id WHERE 1=1` + conditions
	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + itemColumns + ` FROM items i LEFT JOIN categories c ON i.category_id = c.id WHERE 1=1`
	query += conditions

	orderBy := "i.id"
	if ItemOrderColumns[f.OrderBy] {
		orderBy = "i." + f.OrderBy
	}
	query += " ORDER BY " + orderBy
	if f.Descending {
		query += " DESC"
	}

	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, totalCount, nil
}

func itemFilterConditions(f ItemFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.OwnerID != nil {
		query += fmt.Sprintf(" AND i.user_id = $%d", argIdx)
		args = append(args, *f.OwnerID)
		argIdx++
	}
	if f.CategoryID != nil {
		query += fmt.Sprintf(" AND i.category_id = $%d", argIdx)
		args = append(args, *f.CategoryID)
		argIdx++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (i.name ILIKE $%d OR c.name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND i.price >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND i.price <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}
	if f.MinQty != nil {
		query += fmt.Sprintf(" AND i.quantity >= $%d", argIdx)
		args = append(args, *f.MinQty)
		argIdx++
	}
	if f.MaxQty != nil {
		query += fmt.Sprintf(" AND i.quantity <= $%d", argIdx)
		args = append(args, *f.MaxQty)
		argIdx++
	}
	if f.AddedSince != nil {
		query += fmt.Sprintf(" AND i.date_added >= $%d", argIdx)
		args = append(args, *f.AddedSince)
		argIdx++
	}
	if f.AddedUntil != nil {
		query += fmt.Sprintf(" AND i.date_added <= $%d", argIdx)
		args = append(args, *f.AddedUntil)
		argIdx++
	}

	return query, args, argIdx
}

func (r *PostgresItemRepository) LowStock(ownerID *int, threshold int) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.quantity < $1`
	args := []any{threshold}
	if ownerID != nil {
		query += ` AND i.user_id = $2`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY i.quantity, i.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
