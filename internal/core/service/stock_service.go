package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/kids-stock/internal/core/domain"
	"github.com/rl1809/kids-stock/internal/port"
)

type StockService struct {
	children   port.ChildRepository
	stock      port.StockRepository
	categories *CategoryService
}

func NewStockService(children port.ChildRepository, stock port.StockRepository, categories *CategoryService) *StockService {
	return &StockService{children: children, stock: stock, categories: categories}
}

// GetStock returns one line per catalog category for the child, with zero
// counts for categories that have no record yet.
func (s *StockService) GetStock(ctx context.Context, childID int64) (*domain.StockView, error) {
	child, err := findChild(ctx, s.children, childID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.stock.ListStock(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}

	return &domain.StockView{
		Child: *child,
		Lines: domain.JoinStock(categories, records),
	}, nil
}

// IncrementStock adds amount to the child's count for the category,
// creating the record on first use.
func (s *StockService) IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error) {
	category, err := s.validateChange(ctx, domain.FieldIncrement, domain.LabelIncrement, categoryID, amount)
	if err != nil {
		return nil, err
	}

	child, err := findChild(ctx, s.children, childID)
	if err != nil {
		return nil, err
	}

	rec, err := s.stock.IncrementStock(ctx, childID, categoryID, amount)
	if err != nil {
		return nil, fmt.Errorf("stock increment failed: %w", err)
	}

	return &domain.StockChange{Child: *child, Record: *rec, Category: *category}, nil
}

// DecrementStock subtracts amount from an existing record. A missing record
// is ErrStockNotFound; a count that would go negative is rejected whole with
// an *InsufficientStockError.
func (s *StockService) DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error) {
	category, err := s.validateChange(ctx, domain.FieldDecrement, domain.LabelDecrement, categoryID, amount)
	if err != nil {
		return nil, err
	}

	child, err := findChild(ctx, s.children, childID)
	if err != nil {
		return nil, err
	}

	rec, applied, err := s.stock.DecrementStock(ctx, childID, categoryID, amount)
	if err != nil {
		return nil, fmt.Errorf("stock decrement failed: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrStockNotFound
	}
	if !applied {
		return nil, &domain.InsufficientStockError{CurrentCount: rec.CurrentCount, Requested: amount}
	}

	return &domain.StockChange{Child: *child, Record: *rec, Category: *category}, nil
}

// validateChange checks the amount and that the category exists, reporting
// both problems together.
func (s *StockService) validateChange(ctx context.Context, field, label string, categoryID int64, amount int) (*domain.ClothingCategory, error) {
	var fieldErrs []domain.FieldError

	category, err := s.categories.GetCategory(ctx, categoryID)
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		fieldErrs = append(fieldErrs, domain.FieldError{
			Field:   domain.FieldCategoryID,
			Message: domain.ExistsMessage(domain.LabelCategory),
		})
	case err != nil:
		return nil, err
	}

	if amount < 1 {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: field, Message: domain.MinMessage(label, 1)})
	}

	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationErrors(fieldErrs)
	}
	return category, nil
}
