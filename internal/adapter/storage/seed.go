package storage

import (
	"context"
	"fmt"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

func iconPath(name string) *string {
	p := "/icons/" + name + ".svg"
	return &p
}

// DefaultCategories is the catalog a fresh installation starts with.
func DefaultCategories() []domain.ClothingCategory {
	return []domain.ClothingCategory{
		{Name: "T-shirt", IconPath: iconPath("tshirt"), SortOrder: 1},
		{Name: "Pants", IconPath: iconPath("pants"), SortOrder: 2},
		{Name: "Socks", IconPath: iconPath("socks"), SortOrder: 3},
		{Name: "Handkerchief", IconPath: iconPath("handkerchief"), SortOrder: 4},
		{Name: "Undershirt", IconPath: iconPath("underwear"), SortOrder: 5},
		{Name: "Hat", IconPath: iconPath("hat"), SortOrder: 6},
		{Name: "Swimwear set", IconPath: iconPath("swimwear"), SortOrder: 7},
		{Name: "Plastic bag", IconPath: iconPath("plastic_bag"), SortOrder: 8},
	}
}

// SeedCategories inserts categories only when the table is empty and
// reports how many rows were written.
func (m *MySQLAdapter) SeedCategories(ctx context.Context, categories []domain.ClothingCategory) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM clothing_categories FOR UPDATE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := m.now()
	insert := qb.Insert("clothing_categories").
		Columns("name", "icon_path", "sort_order", "created_at", "updated_at")
	for _, c := range categories {
		insert = insert.Values(c.Name, c.IconPath, c.SortOrder, now, now)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("insert categories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(categories), nil
}
