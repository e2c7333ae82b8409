package service

import (
	"context"
	"sync"
	"time"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

// mockStore is an in-memory implementation of every repository port.
type mockStore struct {
	mu         sync.Mutex
	nextID     int64
	groups     []domain.Group
	children   []domain.Child
	categories []domain.ClothingCategory
	stock      []domain.StockRecord

	takenTokens map[string]bool
	listCalls   int
	err         error
}

func newMockStore() *mockStore {
	return &mockStore{takenTokens: make(map[string]bool)}
}

func (m *mockStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockStore) CreateGroup(ctx context.Context, name, shareToken string) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.takenTokens[shareToken] {
		return nil, domain.ErrDuplicateToken
	}
	m.takenTokens[shareToken] = true

	now := time.Now()
	g := domain.Group{ID: m.id(), Name: name, ShareToken: shareToken, CreatedAt: now, UpdatedAt: now}
	m.groups = append(m.groups, g)
	return &g, nil
}

func (m *mockStore) GetGroupByToken(ctx context.Context, shareToken string) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.groups {
		if g.ShareToken == shareToken {
			return &g, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CreateChild(ctx context.Context, groupID int64, name string) (*domain.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	c := domain.Child{ID: m.id(), GroupID: groupID, Name: name, CreatedAt: now, UpdatedAt: now}
	m.children = append(m.children, c)
	return &c, nil
}

func (m *mockStore) GetChild(ctx context.Context, id int64) (*domain.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.children {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListChildren(ctx context.Context, groupID int64) ([]domain.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Child
	for _, c := range m.children {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateChildName(ctx context.Context, id int64, name string) (*domain.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.children {
		if m.children[i].ID == id {
			m.children[i].Name = name
			m.children[i].UpdatedAt = time.Now()
			c := m.children[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockStore) DeleteChild(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.children {
		if c.ID == id {
			m.children = append(m.children[:i], m.children[i+1:]...)
			kept := m.stock[:0]
			for _, r := range m.stock {
				if r.ChildID != id {
					kept = append(kept, r)
				}
			}
			m.stock = kept
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) ListCategories(ctx context.Context) ([]domain.ClothingCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.ClothingCategory, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *mockStore) GetCategory(ctx context.Context, id int64) (*domain.ClothingCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListStock(ctx context.Context, childID int64) ([]domain.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.StockRecord
	for _, r := range m.stock {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.stock {
		if m.stock[i].ChildID == childID && m.stock[i].ClothingCategoryID == categoryID {
			m.stock[i].CurrentCount += amount
			r := m.stock[i]
			return &r, nil
		}
	}

	r := domain.StockRecord{ID: m.id(), ChildID: childID, ClothingCategoryID: categoryID, CurrentCount: amount}
	m.stock = append(m.stock, r)
	return &r, nil
}

func (m *mockStore) DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.stock {
		if m.stock[i].ChildID == childID && m.stock[i].ClothingCategoryID == categoryID {
			if m.stock[i].CurrentCount < amount {
				r := m.stock[i]
				return &r, false, nil
			}
			m.stock[i].CurrentCount -= amount
			r := m.stock[i]
			return &r, true, nil
		}
	}
	return nil, false, nil
}

func (m *mockStore) seedCategories(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, name := range names {
		m.categories = append(m.categories, domain.ClothingCategory{ID: m.id(), Name: name, SortOrder: i + 1})
	}
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mockCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	delete(c.ttls, key)
	return nil
}
