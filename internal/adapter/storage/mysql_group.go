package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

func (m *MySQLAdapter) CreateGroup(ctx context.Context, name, shareToken string) (*domain.Group, error) {
	now := m.now()
	query, args, err := qb.Insert("user_groups").
		Columns("name", "share_token", "created_at", "updated_at").
		Values(name, shareToken, now, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert group: %w", err)
	}

	result, err := m.db.ExecContext(ctx, query, args...)
	if isMySQLError(err, errDuplicateEntry) {
		return nil, domain.ErrDuplicateToken
	}
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("group id: %w", err)
	}

	return &domain.Group{
		ID:         id,
		Name:       name,
		ShareToken: shareToken,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (m *MySQLAdapter) GetGroupByToken(ctx context.Context, shareToken string) (*domain.Group, error) {
	query, args, err := qb.Select("id", "name", "share_token", "created_at", "updated_at").
		From("user_groups").
		Where(sq.Eq{"share_token": shareToken}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select group: %w", err)
	}

	var g domain.Group
	err = m.db.QueryRowContext(ctx, query, args...).
		Scan(&g.ID, &g.Name, &g.ShareToken, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query group: %w", err)
	}

	return &g, nil
}
