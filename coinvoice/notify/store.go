package notify

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrKeyMismatch   = errors.New("order key does not match")
)

// Order is the stored view of a merchant order.
type Order struct {
	ID    string
	Key   string
	State OrderState
	// Notes collects the comments of every applied decision, oldest first.
	Notes []string
}

// OrderStore is where the processor finds and updates orders. Get and
// FindByKey return ErrOrderNotFound when nothing matches.
type OrderStore interface {
	Get(ctx context.Context, id string) (*Order, error)
	FindByKey(ctx context.Context, key string) (*Order, error)
	Save(ctx context.Context, order *Order) error
}

// MemoryStore is an OrderStore kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*Order)}
}

var _ OrderStore = (*MemoryStore)(nil)

// Put adds or replaces order. An empty state means Pending.
func (s *MemoryStore) Put(order Order) {
	if order.State == "" {
		order.State = Pending
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = clone(&order)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errors.Wrapf(ErrOrderNotFound, "id %q", id)
	}
	return clone(o), nil
}

func (s *MemoryStore) FindByKey(_ context.Context, key string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.Key == key {
			return clone(o), nil
		}
	}
	return nil, errors.Wrapf(ErrOrderNotFound, "key %q", key)
}

func (s *MemoryStore) Save(_ context.Context, order *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return errors.Wrapf(ErrOrderNotFound, "id %q", order.ID)
	}
	s.orders[order.ID] = clone(order)
	return nil
}

func clone(o *Order) *Order {
	c := *o
	c.Notes = append([]string(nil), o.Notes...)
	return &c
}
