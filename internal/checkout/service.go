package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gogoldh/mobile-app/internal/cart"
	"github.com/gogoldh/mobile-app/internal/domain"
	"github.com/gogoldh/mobile-app/internal/orders"
)

var (
	ErrMissingName    = errors.New("full name is required")
	ErrMissingEmail   = errors.New("a valid email is required")
	ErrMissingAddress = errors.New("address is required")
)

// OrderLog is the slice of the order log the checkout transaction needs.
type OrderLog interface {
	Commit(ctx context.Context, items []domain.LineItem) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
}

// CustomerDetails carries the checkout form fields. Name, email and address
// are required when details are supplied at all; phone is optional.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

func (d CustomerDetails) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if email := strings.TrimSpace(d.Email); email == "" || !strings.Contains(email, "@") {
		return ErrMissingEmail
	}
	if strings.TrimSpace(d.Address) == "" {
		return ErrMissingAddress
	}
	return nil
}

// Request is one checkout attempt. An empty IdempotencyKey gets a generated
// one; retrying with the same key never records a second order.
type Request struct {
	Customer       *CustomerDetails
	IdempotencyKey string
}

// Service owns the commit-and-clear transaction: snapshot the cart, persist
// the order, and only then clear the cart. A storage failure leaves the cart
// intact, so the user can retry without losing anything.
type Service struct {
	cart *cart.Store
	log  OrderLog

	mu   sync.Mutex
	seen map[string]string // idempotency key -> order id
}

func NewService(cartStore *cart.Store, orderLog OrderLog) *Service {
	return &Service{
		cart: cartStore,
		log:  orderLog,
		seen: make(map[string]string),
	}
}

// PlaceOrder runs the checkout transaction and returns the recorded order.
// The cart snapshot is taken synchronously, before the storage write starts,
// so cart mutations racing the write never bleed into the recorded order.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (*domain.Order, error) {
	if req.Customer != nil {
		if err := req.Customer.Validate(); err != nil {
			return nil, err
		}
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if orderID, ok := s.seen[req.IdempotencyKey]; ok {
		log.Printf("duplicate checkout request, idempotency_key=%s order_id=%s", req.IdempotencyKey, orderID)
		existing, err := s.log.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot) == 0 {
		return nil, orders.ErrEmptyCart
	}

	order, err := s.log.Commit(ctx, snapshot)
	if err != nil {
		// Nothing was recorded and the cart is untouched; safe to retry.
		return nil, err
	}

	s.cart.Clear()
	s.seen[req.IdempotencyKey] = order.ID
	return order, nil
}
