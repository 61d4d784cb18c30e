// Package cart holds the shopping cart state. Mutations run under a single
// lock and are followed by a best-effort persistence write, mirroring the
// single-writer model of the original storefront.
package cart

import (
	"sync"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/localstore"
	"go.uber.org/zap"
)

// Persister is the durable blob port, satisfied by localstore.Store.
type Persister interface {
	PutJSON(key string, v interface{}) error
	GetJSON(key string, out interface{}) (bool, error)
}

// Notifier is the toast side channel.
type Notifier interface {
	Success(title, message string) domain.Toast
}

// Store is the cart state container.
type Store struct {
	mu     sync.Mutex
	items  []domain.CartItem
	blobs  Persister
	toasts Notifier
}

// New creates a cart store, restoring any persisted lines.
func New(blobs Persister, toasts Notifier) *Store {
	s := &Store{blobs: blobs, toasts: toasts}
	if blobs != nil {
		var items []domain.CartItem
		if found, err := blobs.GetJSON(localstore.KeyCart, &items); err == nil && found {
			s.items = items
		}
	}
	return s
}

// Add inserts a line for the product with quantity 1, or increments the
// existing line. It always succeeds and enqueues a success toast.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	added := false
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			added = true
			break
		}
	}
	if !added {
		s.items = append(s.items, domain.CartLineOf(p))
	}
	s.persist()
	s.mu.Unlock()

	if s.toasts != nil {
		s.toasts.Success("Added to cart", p.Name)
	}
}

// Remove deletes the line for the product id. Unknown ids are a no-op.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persist()
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes
// the line, equivalent to Remove.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total sums price times quantity over all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// ItemsCount sums quantities over all lines, not the line count.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// persist writes the cart blob. Failures are logged and swallowed: the
// in-memory state stays authoritative for the session.
func (s *Store) persist() {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.PutJSON(localstore.KeyCart, s.items); err != nil {
		zap.L().Warn("cart: failed to persist", zap.Error(err))
	}
}
