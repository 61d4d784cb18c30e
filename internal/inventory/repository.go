package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when no inventory record exists for a product.
var ErrRecordNotFound = errors.New("inventory record not found")

// Repository handles persistence for inventory records and the movement log.
type Repository interface {
	// Get retrieves the record for a product id.
	Get(ctx context.Context, productID int64) (*domain.InventoryRecord, error)

	// Save inserts or updates a record.
	Save(ctx context.Context, rec *domain.InventoryRecord) error

	// List retrieves all records.
	List(ctx context.Context) ([]domain.InventoryRecord, error)

	// AppendMovement inserts one ledger entry.
	AppendMovement(ctx context.Context, m *domain.StockMovement) error

	// Movements retrieves recent entries, newest first. A zero productID
	// matches all products.
	Movements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error)

	// CountMovements returns the ledger size.
	CountMovements(ctx context.Context) (int64, error)

	// TrimMovements drops the oldest entries so at most keep remain.
	TrimMovements(ctx context.Context, keep int) error
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Get(ctx context.Context, productID int64) (*domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepository) Save(ctx context.Context, rec *domain.InventoryRecord) error {
	rec.UpdatedAt = time.Now()
	if rec.ID == 0 {
		rec.ID = common.UUIDint64()
		return r.db.WithContext(ctx).Create(rec).Error
	}
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *GormRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	var recs []domain.InventoryRecord
	err := r.db.WithContext(ctx).Order("product_id ASC").Find(&recs).Error
	return recs, err
}

func (r *GormRepository) AppendMovement(ctx context.Context, m *domain.StockMovement) error {
	if m.ID == 0 {
		m.ID = common.UUIDint64()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormRepository) Movements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	q := r.db.WithContext(ctx).Model(&domain.StockMovement{})
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	var rows []domain.StockMovement
	err := q.Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormRepository) CountMovements(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.StockMovement{}).Count(&total).Error
	return total, err
}

func (r *GormRepository) TrimMovements(ctx context.Context, keep int) error {
	// Find the id of the keep-th newest entry; everything older goes.
	var cutoff domain.StockMovement
	err := r.db.WithContext(ctx).
		Model(&domain.StockMovement{}).
		Order("id DESC").
		Offset(keep - 1).
		Limit(1).
		First(&cutoff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id < ?", cutoff.ID).
		Delete(&domain.StockMovement{}).Error
}

// MemoryRepository keeps records and movements in memory. It backs tests and
// the offline fallback mode.
type MemoryRepository struct {
	mu        sync.Mutex
	records   map[int64]domain.InventoryRecord
	movements []domain.StockMovement
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[int64]domain.InventoryRecord)}
}

func (r *MemoryRepository) Get(ctx context.Context, productID int64) (*domain.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[productID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) Save(ctx context.Context, rec *domain.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = common.UUIDint64()
	}
	rec.UpdatedAt = time.Now()
	r.records[rec.ProductID] = *rec
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.InventoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *MemoryRepository) AppendMovement(ctx context.Context, m *domain.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == 0 {
		m.ID = common.UUIDint64()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *MemoryRepository) Movements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]domain.StockMovement, 0, limit)
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if productID != 0 && r.movements[i].ProductID != productID {
			continue
		}
		out = append(out, r.movements[i])
	}
	return out, nil
}

func (r *MemoryRepository) CountMovements(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movements)), nil
}

func (r *MemoryRepository) TrimMovements(ctx context.Context, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.movements) > keep {
		r.movements = append([]domain.StockMovement(nil), r.movements[len(r.movements)-keep:]...)
	}
	return nil
}
