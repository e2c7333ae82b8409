package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShareTokenLength is the length of every generated share token.
const ShareTokenLength = 32

type Group struct {
	ID         int64
	Name       string
	ShareToken string
	Children   []Child
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewShareToken returns a fresh 32-character lowercase alphanumeric token.
func NewShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
