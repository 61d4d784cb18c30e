package checkout

import (
	"context"
	"time"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
	"gorm.io/gorm"
)

// OrderRepository persists orders and their items.
type OrderRepository interface {
	// Create inserts an order with its items.
	Create(ctx context.Context, order *domain.Order) error

	// UpdateStatus updates an order's status by reference.
	UpdateStatus(ctx context.Context, orderRef, status string) error

	// GetByRef retrieves an order with items.
	GetByRef(ctx context.Context, orderRef string) (*domain.Order, error)

	// List retrieves orders with pagination, newest first.
	List(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)
}

// GormOrderRepository is the GORM implementation of OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == 0 {
		order.ID = common.UUIDint64()
	}
	for i := range order.Items {
		if order.Items[i].ID == 0 {
			order.Items[i].ID = common.UUIDint64()
		}
		order.Items[i].OrderID = order.ID
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderRef, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("order_ref = ?", orderRef).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *GormOrderRepository) GetByRef(ctx context.Context, orderRef string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_ref = ?", orderRef).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) List(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}
