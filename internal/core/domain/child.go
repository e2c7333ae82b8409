package domain

import "time"

type Child struct {
	ID        int64
	GroupID   int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
