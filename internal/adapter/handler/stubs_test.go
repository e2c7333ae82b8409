package handler

import (
	"context"
	"errors"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

var errNotStubbed = errors.New("not stubbed")

type stubGroups struct {
	create func(ctx context.Context, name string) (*domain.Group, error)
	get    func(ctx context.Context, token string) (*domain.Group, error)
}

func (s *stubGroups) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	if s.create == nil {
		return nil, errNotStubbed
	}
	return s.create(ctx, name)
}

func (s *stubGroups) GetGroupByToken(ctx context.Context, token string) (*domain.Group, error) {
	if s.get == nil {
		return nil, errNotStubbed
	}
	return s.get(ctx, token)
}

type stubChildren struct {
	create func(ctx context.Context, token, name string) (*domain.Child, error)
	get    func(ctx context.Context, id int64) (*domain.Child, error)
	list   func(ctx context.Context, token string) ([]domain.Child, error)
	update func(ctx context.Context, id int64, name string) (*domain.Child, error)
	delete func(ctx context.Context, id int64) error
}

func (s *stubChildren) CreateChild(ctx context.Context, token, name string) (*domain.Child, error) {
	if s.create == nil {
		return nil, errNotStubbed
	}
	return s.create(ctx, token, name)
}

func (s *stubChildren) GetChild(ctx context.Context, id int64) (*domain.Child, error) {
	if s.get == nil {
		return nil, errNotStubbed
	}
	return s.get(ctx, id)
}

func (s *stubChildren) ListChildren(ctx context.Context, token string) ([]domain.Child, error) {
	if s.list == nil {
		return nil, errNotStubbed
	}
	return s.list(ctx, token)
}

func (s *stubChildren) UpdateChild(ctx context.Context, id int64, name string) (*domain.Child, error) {
	if s.update == nil {
		return nil, errNotStubbed
	}
	return s.update(ctx, id, name)
}

func (s *stubChildren) DeleteChild(ctx context.Context, id int64) error {
	if s.delete == nil {
		return errNotStubbed
	}
	return s.delete(ctx, id)
}

type stubStock struct {
	get       func(ctx context.Context, childID int64) (*domain.StockView, error)
	increment func(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error)
	decrement func(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error)
}

func (s *stubStock) GetStock(ctx context.Context, childID int64) (*domain.StockView, error) {
	if s.get == nil {
		return nil, errNotStubbed
	}
	return s.get(ctx, childID)
}

func (s *stubStock) IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error) {
	if s.increment == nil {
		return nil, errNotStubbed
	}
	return s.increment(ctx, childID, categoryID, amount)
}

func (s *stubStock) DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error) {
	if s.decrement == nil {
		return nil, errNotStubbed
	}
	return s.decrement(ctx, childID, categoryID, amount)
}

type stubCategories struct {
	list func(ctx context.Context) ([]domain.ClothingCategory, error)
}

func (s *stubCategories) ListCategories(ctx context.Context) ([]domain.ClothingCategory, error) {
	if s.list == nil {
		return nil, errNotStubbed
	}
	return s.list(ctx)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
