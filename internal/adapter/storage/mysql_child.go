package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

var childColumns = []string{"id", "group_id", "name", "created_at", "updated_at"}

func (m *MySQLAdapter) CreateChild(ctx context.Context, groupID int64, name string) (*domain.Child, error) {
	now := m.now()
	query, args, err := qb.Insert("children").
		Columns("group_id", "name", "created_at", "updated_at").
		Values(groupID, name, now, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert child: %w", err)
	}

	result, err := m.db.ExecContext(ctx, query, args...)
	if isMySQLError(err, errForeignKeyViolation) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("child id: %w", err)
	}

	return &domain.Child{
		ID:        id,
		GroupID:   groupID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *MySQLAdapter) GetChild(ctx context.Context, id int64) (*domain.Child, error) {
	query, args, err := qb.Select(childColumns...).
		From("children").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select child: %w", err)
	}

	var c domain.Child
	err = m.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.GroupID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query child: %w", err)
	}

	return &c, nil
}

func (m *MySQLAdapter) ListChildren(ctx context.Context, groupID int64) ([]domain.Child, error) {
	query, args, err := qb.Select(childColumns...).
		From("children").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select children: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	children := []domain.Child{}
	for rows.Next() {
		var c domain.Child
		if err := rows.Scan(&c.ID, &c.GroupID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}

	return children, nil
}

func (m *MySQLAdapter) UpdateChildName(ctx context.Context, id int64, name string) (*domain.Child, error) {
	query, args, err := qb.Update("children").
		Set("name", name).
		Set("updated_at", m.now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update child: %w", err)
	}

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}

	// MySQL reports zero affected rows for a no-op rename, so existence is
	// decided by reading the row back.
	return m.GetChild(ctx, id)
}

func (m *MySQLAdapter) DeleteChild(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Delete("children").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete child: %w", err)
	}

	result, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete child: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete child rows: %w", err)
	}
	return rows > 0, nil
}
