package cart

import (
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/localstore"
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

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Success(title, message string) domain.Toast {
	f.titles = append(f.titles, title)
	return domain.Toast{}
}

func candle() domain.Product {
	return domain.Product{ID: 1, Name: "Scented candle", Price: 1000, Category: domain.CategoryGift}
}

func earbuds() domain.Product {
	return domain.Product{ID: 2, Name: "Earbuds", Price: 2500, Category: domain.CategoryTech}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	toasts := &fakeNotifier{}
	s := New(newMemPersister(), toasts)

	s.Add(candle())
	s.Add(candle())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.ItemsCount())
	assert.Equal(t, 2000.0, s.Total())
	assert.Len(t, toasts.titles, 2)
}

func TestItemsCountSumsQuantities(t *testing.T) {
	s := New(nil, nil)
	s.Add(candle())
	s.Add(earbuds())
	s.UpdateQuantity(2, 3)

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 4, s.ItemsCount())
	assert.Equal(t, 1000.0+3*2500.0, s.Total())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := New(nil, nil)
	s.Add(candle())
	s.Add(earbuds())

	s.UpdateQuantity(1, 0)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	s.UpdateQuantity(2, -5)
	assert.Empty(t, s.Items())
	assert.Zero(t, s.Total())
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	s := New(nil, nil)
	s.Add(candle())
	s.Remove(999)
	assert.Len(t, s.Items(), 1)
}

func TestTotalOrderIndependent(t *testing.T) {
	a := New(nil, nil)
	a.Add(candle())
	a.Add(earbuds())
	a.Add(earbuds())

	b := New(nil, nil)
	b.Add(earbuds())
	b.Add(candle())
	b.Add(earbuds())

	assert.Equal(t, a.Total(), b.Total())
	assert.Equal(t, a.ItemsCount(), b.ItemsCount())
}

func TestClear(t *testing.T) {
	s := New(nil, nil)
	s.Add(candle())
	s.Clear()
	assert.Empty(t, s.Items())
	assert.Zero(t, s.ItemsCount())
}

func TestRestoreFromPersistedBlob(t *testing.T) {
	blobs := newMemPersister()

	first := New(blobs, nil)
	first.Add(candle())
	first.UpdateQuantity(1, 5)

	second := New(blobs, nil)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5000.0, second.Total())
}

func TestPersistWritesCartKey(t *testing.T) {
	blobs := newMemPersister()
	s := New(blobs, nil)
	s.Add(candle())

	_, ok := blobs.blobs[localstore.KeyCart]
	assert.True(t, ok)
}
