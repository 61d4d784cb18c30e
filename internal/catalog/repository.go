package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository handles product persistence.
type ProductRepository interface {
	// List retrieves all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// Page retrieves products with pagination and an optional name filter.
	Page(ctx context.Context, q string, sortCol, order string, page, pageSize int) ([]domain.Product, int64, error)

	// Get retrieves a product by id.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// Create inserts a product.
	Create(ctx context.Context, p *domain.Product) error

	// Update saves a product.
	Update(ctx context.Context, p *domain.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		// Fall back to an unordered scan when the ordered query cannot be
		// served (missing index/column on older deployments).
		rows = rows[:0]
		err = r.db.WithContext(ctx).Find(&rows).Error
	}
	return rows, err
}

func (r *GormProductRepository) Page(ctx context.Context, q string, sortCol, order string, page, pageSize int) ([]domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Product
	err := db.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}

func (r *GormProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}
