package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/localstore"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	blobs map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{blobs: make(map[string][]byte)}
}

func (m *memCache) PutJSON(key string, v interface{}) error {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memCache) GetJSON(key string, out interface{}) (bool, error) {
	data, ok := m.blobs[key]
	if !ok {
		return false, nil
	}
	return true, jsoniter.Unmarshal(data, out)
}

// fakeRepo serves a fixed product list and can be switched to failing mode.
type fakeRepo struct {
	products []domain.Product
	down     bool
}

var errBackendDown = errors.New("backend down")

func (f *fakeRepo) List(ctx context.Context) ([]domain.Product, error) {
	if f.down {
		return nil, errBackendDown
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeRepo) Page(ctx context.Context, q, sortCol, order string, page, pageSize int) ([]domain.Product, int64, error) {
	if f.down {
		return nil, 0, errBackendDown
	}
	return f.products, int64(len(f.products)), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if f.down {
		return nil, errBackendDown
	}
	for _, p := range f.products {
		if p.ID == id {
			c := p
			return &c, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeRepo) Create(ctx context.Context, p *domain.Product) error {
	if f.down {
		return errBackendDown
	}
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *domain.Product) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id int64) error          { return nil }

func TestListFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{products: []domain.Product{
		{ID: 1, Name: "candle", Price: 1000, Category: domain.CategoryGift},
		{ID: 2, Name: "earbuds", Price: 2500, Category: domain.CategoryTech},
	}}
	cache := newMemCache()
	s := NewService(repo, cache)

	// healthy pass primes the cache
	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	_, cached := cache.blobs[localstore.KeyProducts]
	assert.True(t, cached)

	// backend failure degrades to the cached list
	repo.down = true
	rows, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "candle", rows[0].Name)
}

func TestListWithColdCacheReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{down: true}, newMemCache())

	rows, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{products: []domain.Product{{ID: 7, Name: "lamp", Price: 159}}}
	cache := newMemCache()
	s := NewService(repo, cache)

	_, err := s.List(ctx)
	require.NoError(t, err)

	repo.down = true
	p, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "lamp", p.Name)

	_, err = s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetUnknownIDWhileHealthy(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{}, newMemCache())
	_, err := s.Get(ctx, 123)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestParseDocumentCoercesStringPrice(t *testing.T) {
	p, err := ParseDocument(map[string]interface{}{
		"name":     " Candle ",
		"price":    "1500.50",
		"category": "GIFT",
	})
	require.NoError(t, err)
	assert.Equal(t, "Candle", p.Name)
	assert.Equal(t, 1500.50, p.Price)
	assert.Equal(t, domain.CategoryGift, p.Category)
}

func TestParseDocumentNumberPriceAndTech(t *testing.T) {
	p, err := ParseDocument(map[string]interface{}{
		"name":     "Earbuds",
		"price":    299000,
		"category": "tech",
		"image":    "https://cdn.example.com/earbuds.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 299000.0, p.Price)
	assert.Equal(t, domain.CategoryTech, p.Category)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://cdn.example.com/earbuds.jpg", p.Images[0])
}

func TestParseDocumentUnknownCategoryDefaultsToGift(t *testing.T) {
	p, err := ParseDocument(map[string]interface{}{
		"name":     "Mystery box",
		"price":    "10",
		"category": "gadgets",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryGift, p.Category)
}

func TestParseDocumentRejectsUnparsablePrice(t *testing.T) {
	_, err := ParseDocument(map[string]interface{}{
		"name":  "Broken",
		"price": "not a number",
	})
	assert.Error(t, err)
}

func TestParseDocumentLenientTimestamp(t *testing.T) {
	p, err := ParseDocument(map[string]interface{}{
		"name":       "Album",
		"price":      "65000",
		"created_at": "2024-05-01 10:30:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2024, p.CreatedAt.Year())
}
