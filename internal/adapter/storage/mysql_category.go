package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

var categoryColumns = []string{"id", "name", "icon_path", "sort_order"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (domain.ClothingCategory, error) {
	var (
		c    domain.ClothingCategory
		icon sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &icon, &c.SortOrder); err != nil {
		return c, err
	}
	if icon.Valid {
		c.IconPath = &icon.String
	}
	return c, nil
}

func (m *MySQLAdapter) ListCategories(ctx context.Context) ([]domain.ClothingCategory, error) {
	query, args, err := qb.Select(categoryColumns...).
		From("clothing_categories").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select categories: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.ClothingCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (m *MySQLAdapter) GetCategory(ctx context.Context, id int64) (*domain.ClothingCategory, error) {
	query, args, err := qb.Select(categoryColumns...).
		From("clothing_categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category: %w", err)
	}

	c, err := scanCategory(m.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}

	return &c, nil
}
