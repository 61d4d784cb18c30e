// Package favorites keeps the set of user-liked products.
package favorites

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

// Store holds favorite entries with set semantics and insertion order.
type Store struct {
	mu      sync.Mutex
	entries []domain.FavoriteEntry
	blobs   Persister
}

// New creates a favorites store, restoring any persisted entries.
func New(blobs Persister) *Store {
	s := &Store{blobs: blobs}
	if blobs != nil {
		var entries []domain.FavoriteEntry
		if found, err := blobs.GetJSON(localstore.KeyFavorites, &entries); err == nil && found {
			s.entries = entries
		}
	}
	return s
}

// Add saves an entry. Adding an already-present product id is a no-op.
func (s *Store) Add(entry domain.FavoriteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ProductID == entry.ProductID {
			return
		}
	}
	s.entries = append(s.entries, entry)
	s.persist()
}

// Remove deletes the entry for the product id, if present.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.persist()
}

// Contains reports whether the product id is a favorite.
func (s *Store) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// List returns a copy of the entries in insertion order.
func (s *Store) List() []domain.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) persist() {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.PutJSON(localstore.KeyFavorites, s.entries); err != nil {
		zap.L().Warn("favorites: failed to persist", zap.Error(err))
	}
}
