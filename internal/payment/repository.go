package payment

import (
	"context"
	"time"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
	"gorm.io/gorm"
)

// TransactionRepository persists mirrored gateway transactions.
type TransactionRepository interface {
	// Create inserts a transaction mirror row.
	Create(ctx context.Context, txn *domain.PaymentTransaction) error

	// Update saves a transaction mirror row.
	Update(ctx context.Context, txn *domain.PaymentTransaction) error

	// GetByOrderRef retrieves the latest transaction for an order.
	GetByOrderRef(ctx context.Context, orderRef string) (*domain.PaymentTransaction, error)

	// ListPending retrieves transactions awaiting settlement.
	ListPending(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error)
}

// GormTransactionRepository is the GORM implementation of
// TransactionRepository.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM-based repository.
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, txn *domain.PaymentTransaction) error {
	if txn.ID == 0 {
		txn.ID = common.UUIDint64()
	}
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *GormTransactionRepository) Update(ctx context.Context, txn *domain.PaymentTransaction) error {
	txn.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *GormTransactionRepository) GetByOrderRef(ctx context.Context, orderRef string) (*domain.PaymentTransaction, error) {
	var txn domain.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("order_ref = ?", orderRef).
		Order("created_at DESC").
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *GormTransactionRepository) ListPending(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []*domain.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.PaymentPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
