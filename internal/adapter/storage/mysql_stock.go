package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

var stockColumns = []string{"id", "child_id", "clothing_category_id", "current_count", "created_at", "updated_at"}

func scanStock(row rowScanner) (domain.StockRecord, error) {
	var r domain.StockRecord
	err := row.Scan(&r.ID, &r.ChildID, &r.ClothingCategoryID, &r.CurrentCount, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (m *MySQLAdapter) ListStock(ctx context.Context, childID int64) ([]domain.StockRecord, error) {
	query, args, err := qb.Select(stockColumns...).
		From("stock_items").
		Where(sq.Eq{"child_id": childID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select stock: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		r, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock: %w", err)
	}

	return records, nil
}

// IncrementStock upserts on the (child_id, clothing_category_id) unique key
// so concurrent increments never lose an update.
func (m *MySQLAdapter) IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockRecord, error) {
	now := m.now()
	query, args, err := qb.Insert("stock_items").
		Columns("child_id", "clothing_category_id", "current_count", "created_at", "updated_at").
		Values(childID, categoryID, amount, now, now).
		Suffix("ON DUPLICATE KEY UPDATE current_count = current_count + ?, updated_at = ?", amount, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert stock: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, query, args...)
	if isMySQLError(err, errForeignKeyViolation) {
		return nil, domain.ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upsert stock: %w", err)
	}

	rec, err := getStock(ctx, tx, childID, categoryID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("stock record vanished after upsert")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// DecrementStock only touches the row when the count stays non-negative.
func (m *MySQLAdapter) DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockRecord, bool, error) {
	query, args, err := qb.Update("stock_items").
		Set("current_count", sq.Expr("current_count - ?", amount)).
		Set("updated_at", m.now()).
		Where(sq.Eq{"child_id": childID, "clothing_category_id": categoryID}).
		Where(sq.GtOrEq{"current_count": amount}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build decrement stock: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("decrement stock rows: %w", err)
	}

	rec, err := getStock(ctx, tx, childID, categoryID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return rec, affected > 0, nil
}

func getStock(ctx context.Context, q queryRower, childID, categoryID int64) (*domain.StockRecord, error) {
	query, args, err := qb.Select(stockColumns...).
		From("stock_items").
		Where(sq.Eq{"child_id": childID, "clothing_category_id": categoryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select stock: %w", err)
	}

	rec, err := scanStock(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &rec, nil
}
