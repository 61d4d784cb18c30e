// Package catalog provides product access with a durable local cache
// fallback: a backend failure degrades to the last cached product list
// instead of surfacing a hard error.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/localstore"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Cache is the local blob port, satisfied by localstore.Store.
type Cache interface {
	PutJSON(key string, v interface{}) error
	GetJSON(key string, out interface{}) (bool, error)
}

// Service is the catalog access layer.
type Service struct {
	repo  ProductRepository
	cache Cache
}

// NewService creates a catalog service. A nil cache disables the fallback.
func NewService(repo ProductRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns all products newest first. On a backend failure the cached
// list is returned and the error is swallowed.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Warn("catalog: list failed, serving local cache", zap.Error(err))
		return s.cachedList(), nil
	}
	s.refreshCache(rows)
	return rows, nil
}

// Page returns products with pagination for the admin panel. No cache
// fallback here: the admin needs the authoritative answer.
func (s *Service) Page(ctx context.Context, q, sortCol, order string, page, pageSize int) ([]domain.Product, int64, error) {
	return s.repo.Page(ctx, q, sortCol, order, page, pageSize)
}

// Get returns one product, falling back to the cached list on failure.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if err == ErrProductNotFound {
		return nil, err
	}
	zap.L().Warn("catalog: get failed, scanning local cache", zap.Int64("id", id), zap.Error(err))
	for _, cached := range s.cachedList() {
		if cached.ID == id {
			c := cached
			return &c, nil
		}
	}
	return nil, ErrProductNotFound
}

// Create inserts a product and refreshes the cache.
func (s *Service) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.reloadCache(ctx)
	return nil
}

// Update saves a product and refreshes the cache.
func (s *Service) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.reloadCache(ctx)
	return nil
}

// Delete removes a product and refreshes the cache.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadCache(ctx)
	return nil
}

func (s *Service) cachedList() []domain.Product {
	if s.cache == nil {
		return nil
	}
	var rows []domain.Product
	if found, err := s.cache.GetJSON(localstore.KeyProducts, &rows); err != nil || !found {
		return nil
	}
	return rows
}

func (s *Service) refreshCache(rows []domain.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.PutJSON(localstore.KeyProducts, rows); err != nil {
		zap.L().Warn("catalog: failed to refresh product cache", zap.Error(err))
	}
}

func (s *Service) reloadCache(ctx context.Context) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return
	}
	s.refreshCache(rows)
}

// rawProduct is the loosely-typed document shape seen at the ingestion
// boundary: price may arrive as a string or a number, the creation time as
// any common timestamp format.
type rawProduct struct {
	ID          interface{} `mapstructure:"id"`
	Name        string      `mapstructure:"name"`
	Price       interface{} `mapstructure:"price"`
	Images      []string    `mapstructure:"images"`
	Image       string      `mapstructure:"image"`
	Category    string      `mapstructure:"category"`
	Description string      `mapstructure:"description"`
	CreatedAt   string      `mapstructure:"created_at"`
}

// ParseDocument normalizes a raw catalog document into a Product. This is
// the single parsing boundary: price is coerced to float64 whether it
// arrives as string or number, timestamps are parsed leniently, and an
// unknown category defaults to gift.
func ParseDocument(doc map[string]interface{}) (domain.Product, error) {
	var raw rawProduct
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Product{}, err
	}
	if err := dec.Decode(doc); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		Name:        strings.TrimSpace(raw.Name),
		Images:      raw.Images,
		Description: raw.Description,
	}

	if raw.ID != nil {
		p.ID = cast.ToInt64(raw.ID)
	}
	if raw.Price != nil {
		price, err := cast.ToFloat64E(raw.Price)
		if err != nil {
			return domain.Product{}, err
		}
		p.Price = price
	}
	if len(p.Images) == 0 && raw.Image != "" {
		p.Images = domain.StringList{raw.Image}
	}

	switch strings.ToLower(strings.TrimSpace(raw.Category)) {
	case domain.CategoryTech:
		p.Category = domain.CategoryTech
	default:
		p.Category = domain.CategoryGift
	}

	if raw.CreatedAt != "" {
		if ts, err := dateparse.ParseAny(raw.CreatedAt); err == nil {
			p.CreatedAt = ts
		}
	}
	return p, nil
}
