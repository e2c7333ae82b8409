package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

type stockFixture struct {
	store *mockStore
	svc   *StockService
	child *domain.Child
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()

	store := newMockStore()
	store.seedCategories("T-shirt", "Pants", "Socks")
	group := setupGroup(t, store)

	child, err := NewChildService(store, store).CreateChild(context.Background(), group.ShareToken, "Taro")
	require.NoError(t, err)

	categories := NewCategoryService(store, newMockCache(), time.Hour, nil)
	return &stockFixture{
		store: store,
		svc:   NewStockService(store, store, categories),
		child: child,
	}
}

func (f *stockFixture) categoryID(i int) int64 {
	return f.store.categories[i].ID
}

func TestGetStock_FullCatalogWithoutRecords(t *testing.T) {
	f := newStockFixture(t)

	view, err := f.svc.GetStock(context.Background(), f.child.ID)
	require.NoError(t, err)

	assert.Equal(t, f.child.ID, view.Child.ID)
	require.Len(t, view.Lines, 3)
	for i, line := range view.Lines {
		assert.Equal(t, f.categoryID(i), line.Category.ID)
		assert.Zero(t, line.CurrentCount)
		assert.Nil(t, line.StockRecordID)
	}
}

func TestGetStock_ChildNotFound(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.GetStock(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)
}

func TestIncrementStock_CreatesThenAccumulates(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	cat := f.categoryID(0)

	first, err := f.svc.IncrementStock(ctx, f.child.ID, cat, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Record.CurrentCount)
	assert.Equal(t, "Taro", first.Child.Name)
	assert.Equal(t, "T-shirt", first.Category.Name)

	second, err := f.svc.IncrementStock(ctx, f.child.ID, cat, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Record.CurrentCount)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Len(t, f.store.stock, 1)

	view, err := f.svc.GetStock(ctx, f.child.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Lines[0].StockRecordID)
	assert.Equal(t, first.Record.ID, *view.Lines[0].StockRecordID)
	assert.Equal(t, 5, view.Lines[0].CurrentCount)
	assert.Nil(t, view.Lines[1].StockRecordID)
}

func TestIncrementStock_Validation(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.IncrementStock(context.Background(), f.child.ID, 999, 0)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string][]string{
		domain.FieldCategoryID: {"the selected clothing category does not exist"},
		domain.FieldIncrement:  {"increment must be at least 1"},
	}, ve.Fields())
	assert.Empty(t, f.store.stock)
}

func TestIncrementStock_ChildNotFound(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.IncrementStock(context.Background(), 999, f.categoryID(0), 1)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)
	assert.Empty(t, f.store.stock)
}

func TestDecrementStock_Scenario(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	cat := f.categoryID(0)

	_, err := f.svc.IncrementStock(ctx, f.child.ID, cat, 3)
	require.NoError(t, err)

	_, err = f.svc.DecrementStock(ctx, f.child.ID, cat, 5)
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 3, ise.CurrentCount)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 3, f.store.stock[0].CurrentCount)

	change, err := f.svc.DecrementStock(ctx, f.child.ID, cat, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, change.Record.CurrentCount)
}

func TestDecrementStock_NoRecord(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.DecrementStock(context.Background(), f.child.ID, f.categoryID(1), 1)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
	assert.Empty(t, f.store.stock)
}

func TestDecrementStock_Validation(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.DecrementStock(context.Background(), 999, f.categoryID(0), 0)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"decrement must be at least 1"}, ve.Fields()[domain.FieldDecrement])
}

func TestDeleteChild_CascadesStock(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.svc.IncrementStock(ctx, f.child.ID, f.categoryID(0), 1)
	require.NoError(t, err)

	require.NoError(t, NewChildService(f.store, f.store).DeleteChild(ctx, f.child.ID))
	assert.Empty(t, f.store.stock)

	_, err = f.svc.GetStock(ctx, f.child.ID)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)
}

func TestStock_Concurrent(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	cat := f.categoryID(2)

	_, err := f.svc.IncrementStock(ctx, f.child.ID, cat, 10)
	require.NoError(t, err)

	var okCount, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.DecrementStock(ctx, f.child.ID, cat, 1)
			switch {
			case err == nil:
				okCount.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), okCount.Load())
	assert.Equal(t, int32(20), rejected.Load())
	assert.Equal(t, 0, f.store.stock[0].CurrentCount)
}
