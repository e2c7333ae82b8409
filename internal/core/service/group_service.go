package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/kids-stock/internal/core/domain"
	"github.com/rl1809/kids-stock/internal/port"
)

type GroupService struct {
	groups        port.GroupRepository
	children      port.ChildRepository
	tokenAttempts int
	newToken      func() string
}

func NewGroupService(groups port.GroupRepository, children port.ChildRepository, tokenAttempts int) *GroupService {
	if tokenAttempts < 1 {
		tokenAttempts = 1
	}
	return &GroupService{
		groups:        groups,
		children:      children,
		tokenAttempts: tokenAttempts,
		newToken:      domain.NewShareToken,
	}
}

// CreateGroup stores a new group under a freshly generated share token,
// retrying with a new token if the store reports a collision.
func (s *GroupService) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	name, err := domain.NormalizeName(domain.LabelGroupName, name)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.tokenAttempts; attempt++ {
		group, err := s.groups.CreateGroup(ctx, name, s.newToken())
		if errors.Is(err, domain.ErrDuplicateToken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}

		group.Children = []domain.Child{}
		return group, nil
	}

	return nil, fmt.Errorf("create group after %d attempts: %w", s.tokenAttempts, domain.ErrDuplicateToken)
}

// GetGroupByToken returns the group together with its children.
func (s *GroupService) GetGroupByToken(ctx context.Context, token string) (*domain.Group, error) {
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

	group.Children = children
	return group, nil
}

func findGroup(ctx context.Context, groups port.GroupRepository, token string) (*domain.Group, error) {
	group, err := groups.GetGroupByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}
