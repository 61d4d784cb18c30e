package favorites

import (
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	blobs map[string][]byte
}

func newMemPersister() *memPersister {
	return &memPersister{blobs: make(map[string][]byte)}
}

func (m *memPersister) PutJSON(key string, v interface{}) error {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memPersister) GetJSON(key string, out interface{}) (bool, error) {
	data, ok := m.blobs[key]
	if !ok {
		return false, nil
	}
	return true, jsoniter.Unmarshal(data, out)
}

func entry(id int64, name string) domain.FavoriteEntry {
	return domain.FavoriteEntry{ProductID: id, Name: name, Price: 100}
}

func TestAddIsIdempotent(t *testing.T) {
	s := New(nil)
	s.Add(entry(1, "candle"))
	s.Add(entry(1, "candle"))

	assert.Len(t, s.List(), 1)
	assert.True(t, s.Contains(1))
}

func TestRemove(t *testing.T) {
	s := New(nil)
	s.Add(entry(1, "candle"))
	s.Add(entry(2, "earbuds"))

	s.Remove(1)
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))

	s.Remove(999)
	assert.Len(t, s.List(), 1)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := New(nil)
	s.Add(entry(3, "lamp"))
	s.Add(entry(1, "candle"))
	s.Add(entry(2, "earbuds"))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ProductID)
	assert.Equal(t, int64(1), list[1].ProductID)
	assert.Equal(t, int64(2), list[2].ProductID)
}

func TestRestoreFromPersistedBlob(t *testing.T) {
	blobs := newMemPersister()

	first := New(blobs)
	first.Add(entry(1, "candle"))
	first.Add(entry(2, "earbuds"))
	first.Remove(1)

	second := New(blobs)
	require.Len(t, second.List(), 1)
	assert.True(t, second.Contains(2))
	assert.False(t, second.Contains(1))
}
