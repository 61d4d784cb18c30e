package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []map[string]interface{}{{"name": "candle", "qty": 2.0}}
	require.NoError(t, s.PutJSON(KeyCart, in))

	var out []map[string]interface{}
	found, err := s.GetJSON(KeyCart, &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, out, 1)
	assert.Equal(t, "candle", out[0]["name"])
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	var out []string
	found, err := s.GetJSON("nothing_here", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOverwrite(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutJSON(KeyFavorites, []int{1, 2}))
	require.NoError(t, s.PutJSON(KeyFavorites, []int{3}))

	var out []int
	found, err := s.GetJSON(KeyFavorites, &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int{3}, out)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutJSON(KeyOrders, "blob"))
	require.NoError(t, s.Delete(KeyOrders))

	var out string
	found, err := s.GetJSON(KeyOrders, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSchemaVersionMismatchDiscardsBlob(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutJSON(KeyProducts, []string{"old shape"}))

	// simulate a reader from a newer schema generation
	s.version = SchemaVersion + 1

	var out []string
	found, err := s.GetJSON(KeyProducts, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// the stale blob is gone even when read with the original version again
	s.version = SchemaVersion
	found, err = s.GetJSON(KeyProducts, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUnreadableBlobDiscarded(t *testing.T) {
	s := openTestStore(t)

	// not valid JSON for an envelope
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(KeyInventory), []byte("{garbage"))
	})
	require.NoError(t, err)

	var out []string
	found, err := s.GetJSON(KeyInventory, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// the bad blob was deleted
	err = s.db.View(func(tx *bolt.Tx) error {
		assert.Nil(t, tx.Bucket(bucketBlobs).Get([]byte(KeyInventory)))
		return nil
	})
	require.NoError(t, err)
}
