package service

import (
	"context"
	"fmt"

	"github.com/rl1809/kids-stock/internal/core/domain"
	"github.com/rl1809/kids-stock/internal/port"
)

type ChildService struct {
	groups   port.GroupRepository
	children port.ChildRepository
}

func NewChildService(groups port.GroupRepository, children port.ChildRepository) *ChildService {
	return &ChildService{groups: groups, children: children}
}

func (s *ChildService) CreateChild(ctx context.Context, token, name string) (*domain.Child, error) {
	name, err := domain.NormalizeName(domain.LabelChildName, name)
	if err != nil {
		return nil, err
	}

	group, err := findGroup(ctx, s.groups, token)
	if err != nil {
		return nil, err
	}

	child, err := s.children.CreateChild(ctx, group.ID, name)
	if err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}
	return child, nil
}

func (s *ChildService) GetChild(ctx context.Context, id int64) (*domain.Child, error) {
	return findChild(ctx, s.children, id)
}

func (s *ChildService) ListChildren(ctx context.Context, token string) ([]domain.Child, error) {
	group, err := findGroup(ctx, s.groups, token)
	if err != nil {
		return nil, err
	}

	children, err := s.children.ListChildren(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	if children == nil {
		children = []domain.Child{}
	}
	return children, nil
}

// UpdateChild renames a child. The owning group never changes.
func (s *ChildService) UpdateChild(ctx context.Context, id int64, name string) (*domain.Child, error) {
	name, err := domain.NormalizeName(domain.LabelChildName, name)
	if err != nil {
		return nil, err
	}

	child, err := s.children.UpdateChildName(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}
	if child == nil {
		return nil, domain.ErrChildNotFound
	}
	return child, nil
}

// DeleteChild removes the child and, through the foreign key, its stock.
// Deleting an already deleted child reports ErrChildNotFound.
func (s *ChildService) DeleteChild(ctx context.Context, id int64) error {
	deleted, err := s.children.DeleteChild(ctx, id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	if !deleted {
		return domain.ErrChildNotFound
	}
	return nil
}

func findChild(ctx context.Context, children port.ChildRepository, id int64) (*domain.Child, error) {
	child, err := children.GetChild(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	if child == nil {
		return nil, domain.ErrChildNotFound
	}
	return child, nil
}
