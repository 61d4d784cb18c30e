// Package localstore is a bbolt-backed durable blob store. It plays the role
// of the browser's local storage in the original storefront: each concern
// persists one JSON blob under a well-known key and restores it on next load.
// Blobs carry a schema version; a mismatch discards the blob so the owner
// refetches from the authoritative source instead of migrating field by field.
package localstore

import (
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// SchemaVersion is bumped whenever a persisted blob shape changes.
const SchemaVersion = 1

// Well-known blob keys.
const (
	KeyCart      = "cart"
	KeyFavorites = "favorites"
	KeyProducts  = "products"
	KeyOrders    = "orders"
	KeyInventory = "inventory"
	KeyMovements = "stock_movements"
)

var bucketBlobs = []byte("blobs")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Version   int                 `json:"version"`
	UpdatedAt time.Time           `json:"updated_at"`
	Data      jsoniter.RawMessage `json:"data"`
}

// Store wraps a single bbolt file.
type Store struct {
	db      *bolt.DB
	version int
}

// Open opens (or creates) the blob store under the workdir.
func Open(workdir string) (*Store, error) {
	db, err := bolt.Open(filepath.Join(workdir, "localstore.db"), 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, version: SchemaVersion}, nil
}

// PutJSON serializes v into the blob for key.
func (s *Store) PutJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(envelope{
		Version:   s.version,
		UpdatedAt: time.Now(),
		Data:      data,
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(key), blob)
	})
}

// GetJSON restores the blob for key into out. It returns false when the key
// is absent, unreadable, or written by a different schema version; stale
// blobs are deleted so the next write starts clean.
func (s *Store) GetJSON(key string, out interface{}) (bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketBlobs).Get([]byte(key)); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != s.version {
		if err != nil {
			zap.L().Warn("localstore: discarding unreadable blob", zap.String("key", key), zap.Error(err))
		} else {
			zap.L().Warn("localstore: discarding blob with stale schema version",
				zap.String("key", key), zap.Int("found", env.Version), zap.Int("want", s.version))
		}
		_ = s.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		_ = s.Delete(key)
		return false, nil
	}
	return true, nil
}

// Delete removes the blob for key.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Delete([]byte(key))
	})
}

// Close closes the underlying bbolt file.
func (s *Store) Close() error {
	return s.db.Close()
}
