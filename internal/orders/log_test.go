package orders

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// failingStore wraps a MemoryStore and injects errors per operation.
type failingStore struct {
	inner   *MemoryStore
	loadErr error
	saveErr error
	delErr  error
}

func (f *failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.inner.Load(ctx, key)
}

func (f *failingStore) Save(ctx context.Context, key string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.inner.Save(ctx, key, data)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.inner.Delete(ctx, key)
}

func testItems() []domain.LineItem {
	return []domain.LineItem{
		{ID: "a", Title: "Tripel", Price: 5, Quantity: 2},
		{ID: "b", Title: "IPA", Price: 3, Quantity: 1},
	}
}

func TestCommit_EmptyCart(t *testing.T) {
	store := NewMemoryStore()
	l := NewLog(store)

	_, err := l.Commit(context.Background(), nil)

	require.ErrorIs(t, err, ErrEmptyCart)

	all, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "a rejected commit must not touch the persisted list")
}

func TestCommit_ComputesTotalAndSnapshot(t *testing.T) {
	l := NewLog(NewMemoryStore())

	order, err := l.Commit(context.Background(), testItems())

	require.NoError(t, err)
	assert.InDelta(t, 13.00, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "a", order.Items[0].ID)
	assert.False(t, order.Date.IsZero())
}

func TestCommit_SnapshotIsImmutable(t *testing.T) {
	l := NewLog(NewMemoryStore())
	items := testItems()

	order, err := l.Commit(context.Background(), items)
	require.NoError(t, err)

	// Mutating the caller's slice after commit must not affect the stored order.
	items[0].Quantity = 99
	items[0].Price = 1000

	stored, err := l.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.InDelta(t, 13.00, stored.Total, 1e-9)
}

func TestList_MostRecentFirst(t *testing.T) {
	l := NewLog(NewMemoryStore())
	ctx := context.Background()

	first, err := l.Commit(ctx, testItems())
	require.NoError(t, err)
	second, err := l.Commit(ctx, testItems())
	require.NoError(t, err)
	third, err := l.Commit(ctx, testItems())
	require.NoError(t, err)

	all, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)
}

func TestCommit_IDsAreStrictlyIncreasing(t *testing.T) {
	l := NewLog(NewMemoryStore())
	ctx := context.Background()

	var previous int64
	for i := 0; i < 5; i++ {
		order, err := l.Commit(ctx, testItems())
		require.NoError(t, err)

		id, err := strconv.ParseInt(order.ID, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, previous)
		previous = id
	}
}

func TestGet_NotFound(t *testing.T) {
	l := NewLog(NewMemoryStore())

	_, err := l.Get(context.Background(), "1234567890")

	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestList_MissingBlobIsEmptyHistory(t *testing.T) {
	l := NewLog(NewMemoryStore())

	all, err := l.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestList_RereadsPersistedState(t *testing.T) {
	store := NewMemoryStore()
	writer := NewLog(store)
	reader := NewLog(store)
	ctx := context.Background()

	committed, err := writer.Commit(ctx, testItems())
	require.NoError(t, err)

	// A second log over the same store observes the write, as after an app
	// restart.
	all, err := reader.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, committed.ID, all[0].ID)
	assert.Equal(t, committed.Items, all[0].Items)
	assert.InDelta(t, committed.Total, all[0].Total, 1e-9)
}

func TestClearAll(t *testing.T) {
	l := NewLog(NewMemoryStore())
	ctx := context.Background()

	_, err := l.Commit(ctx, testItems())
	require.NoError(t, err)

	require.NoError(t, l.ClearAll(ctx))

	all, err := l.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Clearing an already-empty history is fine.
	require.NoError(t, l.ClearAll(ctx))
}

func TestCommit_StorageError(t *testing.T) {
	store := &failingStore{inner: NewMemoryStore(), saveErr: fmt.Errorf("disk full")}
	l := NewLog(store)

	_, err := l.Commit(context.Background(), testItems())

	require.ErrorIs(t, err, ErrStorage)

	all, err := NewLog(store.inner).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "a failed commit must not leave a partial write")
}

func TestList_LoadError(t *testing.T) {
	store := &failingStore{inner: NewMemoryStore(), loadErr: fmt.Errorf("io error")}
	l := NewLog(store)

	_, err := l.List(context.Background())

	require.ErrorIs(t, err, ErrStorage)
}

func TestList_CorruptBlob(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), ordersKey, []byte("{not json")))
	l := NewLog(store)

	_, err := l.List(context.Background())

	require.ErrorIs(t, err, ErrStorage, "a corrupt blob surfaces as a storage error, never as stale data")
}
