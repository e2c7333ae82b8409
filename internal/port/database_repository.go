package port

import (
	"context"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

// Lookups return (nil, nil) when the row does not exist.

type GroupRepository interface {
	// CreateGroup inserts a group; returns domain.ErrDuplicateToken when the token is taken
	CreateGroup(ctx context.Context, name, shareToken string) (*domain.Group, error)

	GetGroupByToken(ctx context.Context, shareToken string) (*domain.Group, error)
}

type ChildRepository interface {
	CreateChild(ctx context.Context, groupID int64, name string) (*domain.Child, error)

	GetChild(ctx context.Context, id int64) (*domain.Child, error)

	// ListChildren returns the group's children in insertion order
	ListChildren(ctx context.Context, groupID int64) ([]domain.Child, error)

	// UpdateChildName changes the name only
	UpdateChildName(ctx context.Context, id int64, name string) (*domain.Child, error)

	// DeleteChild returns false if nothing was deleted; stock rows cascade
	DeleteChild(ctx context.Context, id int64) (bool, error)
}

type CategoryRepository interface {
	// ListCategories orders by sort_order, then id
	ListCategories(ctx context.Context) ([]domain.ClothingCategory, error)

	GetCategory(ctx context.Context, id int64) (*domain.ClothingCategory, error)
}

type StockRepository interface {
	ListStock(ctx context.Context, childID int64) ([]domain.StockRecord, error)

	// IncrementStock atomically adds amount, creating the record at zero first if needed
	IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockRecord, error)

	// DecrementStock atomically subtracts amount unless the result would be negative.
	// Returns a nil record if none exists, and applied=false with the unchanged
	// record when the count is too low.
	DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (rec *domain.StockRecord, applied bool, err error)
}
