package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// ordersKey is the conventional blob key holding the serialized order list,
// most-recent-first.
const ordersKey = "orders"

var (
	// ErrEmptyCart rejects a commit with zero line items. Callers are
	// expected to guard this at the UI, but the log rejects it regardless.
	ErrEmptyCart = errors.New("cart is empty, nothing to commit")

	// ErrOrderNotFound is returned by Get for an unknown order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrStorage wraps durable-storage read/write failures. The log does not
	// retry internally; the in-memory cart is unaffected, so the caller may
	// safely retry the checkout.
	ErrStorage = errors.New("order storage failure")
)

// Log is the durable append-only history of placed orders. Each operation
// re-reads persisted state rather than serving a cached snapshot, so two Log
// instances over the same store observe each other's writes.
type Log struct {
	store BlobStore

	mu     sync.Mutex
	lastID int64
}

func NewLog(store BlobStore) *Log {
	return &Log{store: store}
}

// Commit snapshots the given line items into a new order, prepends it to the
// persisted list and returns it. The items are deep-copied before any storage
// I/O, so later mutation of the caller's slice never changes the stored order.
//
// Commit persists before the caller clears the cart; on failure nothing was
// recorded and the cart is still intact, so retrying is safe.
func (l *Log) Commit(ctx context.Context, items []domain.LineItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:    l.nextIDLocked(now),
		Date:  now,
		Items: domain.CopyItems(items),
		Total: domain.ItemsTotal(items),
	}

	updated := make([]domain.Order, 0, len(existing)+1)
	updated = append(updated, order)
	updated = append(updated, existing...)

	if err := l.save(ctx, updated); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders, most-recent-first. A missing blob is an empty
// history, not an error.
func (l *Log) List(ctx context.Context) ([]domain.Order, error) {
	return l.load(ctx)
}

// Get returns the order with the given id or ErrOrderNotFound.
func (l *Log) Get(ctx context.Context, id string) (*domain.Order, error) {
	all, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// ClearAll deletes the entire persisted history. Irreversible and idempotent.
// User confirmation is gated at the HTTP boundary, not here.
func (l *Log) ClearAll(ctx context.Context) error {
	err := l.store.Delete(ctx, ordersKey)
	if err != nil && !errors.Is(err, ErrBlobNotFound) {
		return fmt.Errorf("%w: delete orders: %w", ErrStorage, err)
	}
	return nil
}

func (l *Log) load(ctx context.Context) ([]domain.Order, error) {
	data, err := l.store.Load(ctx, ordersKey)
	if errors.Is(err, ErrBlobNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load orders: %w", ErrStorage, err)
	}

	var all []domain.Order
	if err := json.Unmarshal(data, &all); err != nil {
		// A corrupt blob surfaces as a storage error, never stale data.
		return nil, fmt.Errorf("%w: decode orders: %w", ErrStorage, err)
	}
	return all, nil
}

func (l *Log) save(ctx context.Context, all []domain.Order) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("%w: encode orders: %w", ErrStorage, err)
	}
	if err := l.store.Save(ctx, ordersKey, data); err != nil {
		return fmt.Errorf("%w: save orders: %w", ErrStorage, err)
	}
	return nil
}

// nextIDLocked generates a time-based order id, bumped past the previous one
// when two commits land in the same millisecond so ids stay strictly
// increasing in creation order. Caller must hold l.mu.
func (l *Log) nextIDLocked(now time.Time) string {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}
