package cart

import (
	"sync"
	"time"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// DefaultUndoWindow is how long a removed item stays undoable.
const DefaultUndoWindow = 4 * time.Second

// Store holds the authoritative in-memory shopping cart. It is the only
// component allowed to mutate cart contents; everything else is a
// read/command client. All operations are safe for concurrent use.
//
// Invariants maintained by the store:
//   - items are unique by product id
//   - quantity is always >= 1 (only Remove can drop an item)
//   - merging into an existing item keeps that item's position
type Store struct {
	mu    sync.Mutex
	items []domain.LineItem

	// Single-slot undo buffer: only the most recent removal is undoable.
	// A second removal before undo discards the first.
	lastRemoved *domain.LineItem
	undoGen     uint64
	undoTimer   *time.Timer
	undoWindow  time.Duration
}

// NewStore creates an empty cart. undoWindow bounds how long a removed item
// stays undoable; zero keeps the undo slot armed until the next removal.
func NewStore(undoWindow time.Duration) *Store {
	return &Store{undoWindow: undoWindow}
}

// Add puts quantity units of the product into the cart. If a line item with
// the same id already exists its quantity is incremented in place, preserving
// the item's position. Quantities below 1 are treated as 1. Add never fails
// and returns the updated cart contents.
func (s *Store) Add(p domain.Product, quantity int) []domain.LineItem {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			return domain.CopyItems(s.items)
		}
	}
	s.items = append(s.items, domain.LineItemFromProduct(p, quantity))
	return domain.CopyItems(s.items)
}

// Increment raises the quantity of the matching item by one.
// It is a no-op when the id is absent.
func (s *Store) Increment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the matching item by one, floored at 1.
// Decrementing a quantity-1 item does not remove it; removal is explicit.
func (s *Store) Decrement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
			}
			return
		}
	}
}

// Remove deletes the matching item regardless of quantity and arms the undo
// slot with it. The removed item is returned so callers can surface an undo
// affordance; ok is false when the id was not in the cart.
func (s *Store) Remove(id string) (removed domain.LineItem, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			removed = s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.armUndoLocked(removed)
			return removed, true
		}
	}
	return domain.LineItem{}, false
}

// armUndoLocked replaces the undo slot and schedules its expiry.
// Caller must hold s.mu.
func (s *Store) armUndoLocked(item domain.LineItem) {
	if s.undoTimer != nil {
		s.undoTimer.Stop()
		s.undoTimer = nil
	}
	s.lastRemoved = &item
	s.undoGen++

	if s.undoWindow <= 0 {
		return
	}
	gen := s.undoGen
	s.undoTimer = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A newer removal or an undo may have superseded this timer.
		if s.undoGen == gen {
			s.lastRemoved = nil
			s.undoTimer = nil
		}
	})
}

// UndoRemove re-inserts the most recently removed item at the front of the
// cart. The item is not merged with a same-id item that was independently
// re-added in the interim. The slot is one-shot: a second call without an
// intervening removal is a no-op and returns false.
func (s *Store) UndoRemove() (domain.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRemoved == nil {
		return domain.LineItem{}, false
	}
	item := *s.lastRemoved
	s.items = append([]domain.LineItem{item}, s.items...)
	s.lastRemoved = nil
	s.undoGen++
	if s.undoTimer != nil {
		s.undoTimer.Stop()
		s.undoTimer = nil
	}
	return item, true
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a deep copy of the current cart contents in order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CopyItems(s.items)
}

// Snapshot is the copy handed to the checkout transaction. It must be taken
// synchronously, before any storage I/O starts, so in-flight cart mutations
// never bleed into an order snapshot already captured.
func (s *Store) Snapshot() []domain.LineItem {
	return s.Items()
}

// Len reports the number of distinct line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total computes the derived cart total. Pure; no side effects.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ItemsTotal(s.items)
}
