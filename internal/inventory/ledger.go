// Package inventory implements the stock ledger: per-product counters plus
// an append-only movement log capped to a recent window.
package inventory

import (
	"context"

	"github.com/giftgeek/storefront/internal/domain"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold is applied to records created implicitly by
// AddStock.
const DefaultLowStockThreshold = 3

// Ledger applies stock operations while keeping available = stock - reserved
// and reserved >= 0 after every call. Operations either fully apply or leave
// the record untouched.
type Ledger struct {
	repo Repository
	cap  int
}

// NewLedger creates a ledger over the repository with the standard movement
// log cap.
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo, cap: domain.MovementLogCap}
}

// NewLedgerWithCap creates a ledger with a custom movement log cap.
func NewLedgerWithCap(repo Repository, cap int) *Ledger {
	if cap <= 0 {
		cap = domain.MovementLogCap
	}
	return &Ledger{repo: repo, cap: cap}
}

// Record returns the record for a product id.
func (l *Ledger) Record(ctx context.Context, productID int64) (*domain.InventoryRecord, error) {
	return l.repo.Get(ctx, productID)
}

// Records returns all inventory records.
func (l *Ledger) Records(ctx context.Context) ([]domain.InventoryRecord, error) {
	return l.repo.List(ctx)
}

// Movements returns recent ledger entries, newest first.
func (l *Ledger) Movements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	return l.repo.Movements(ctx, productID, limit)
}

// AddStock increases stock, creating the record on first use.
func (l *Ledger) AddStock(ctx context.Context, productID int64, qty int, reason string) error {
	if qty <= 0 {
		return nil
	}
	rec, err := l.repo.Get(ctx, productID)
	if err == ErrRecordNotFound {
		rec = &domain.InventoryRecord{
			ProductID:         productID,
			LowStockThreshold: DefaultLowStockThreshold,
		}
	} else if err != nil {
		return err
	}
	rec.Stock += qty
	if err := l.repo.Save(ctx, rec); err != nil {
		return err
	}
	l.appendMovement(ctx, productID, domain.MovementIn, qty, reason, "")
	return nil
}

// Reserve places a hold against available stock. It reports false with no
// state change when the requested quantity exceeds availability or no record
// exists.
func (l *Ledger) Reserve(ctx context.Context, productID int64, qty int, orderRef string) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	rec, err := l.repo.Get(ctx, productID)
	if err == ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if rec.Available() < qty {
		return false, nil
	}
	rec.Reserved += qty
	if err := l.repo.Save(ctx, rec); err != nil {
		return false, err
	}
	l.appendMovement(ctx, productID, domain.MovementReserved, qty, "stock reserved", orderRef)
	return true, nil
}

// ConfirmSale turns a reservation into a permanent deduction: stock and
// reserved both drop by qty. It reports false when the reservation does not
// cover qty.
func (l *Ledger) ConfirmSale(ctx context.Context, productID int64, qty int, orderRef string) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	rec, err := l.repo.Get(ctx, productID)
	if err == ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if rec.Reserved < qty {
		return false, nil
	}
	rec.Stock -= qty
	rec.Reserved -= qty
	if err := l.repo.Save(ctx, rec); err != nil {
		return false, err
	}
	l.appendMovement(ctx, productID, domain.MovementOut, qty, "sale confirmed", orderRef)
	return true, nil
}

// Release returns a reservation to available stock without touching total
// stock. It reports false when the reservation does not cover qty.
func (l *Ledger) Release(ctx context.Context, productID int64, qty int, orderRef string) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	rec, err := l.repo.Get(ctx, productID)
	if err == ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if rec.Reserved < qty {
		return false, nil
	}
	rec.Reserved -= qty
	if err := l.repo.Save(ctx, rec); err != nil {
		return false, err
	}
	l.appendMovement(ctx, productID, domain.MovementReleased, qty, "reservation released", orderRef)
	return true, nil
}

// SetThreshold updates the low-stock threshold for a product.
func (l *Ledger) SetThreshold(ctx context.Context, productID int64, threshold int) error {
	rec, err := l.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	rec.LowStockThreshold = threshold
	return l.repo.Save(ctx, rec)
}

// LowStock returns records whose available stock is at or below their
// threshold.
func (l *Ledger) LowStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	recs, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := recs[:0]
	for _, rec := range recs {
		if rec.LowStock() {
			low = append(low, rec)
		}
	}
	return low, nil
}

// TrimLog enforces the movement log retention cap, oldest dropped first.
func (l *Ledger) TrimLog(ctx context.Context) error {
	total, err := l.repo.CountMovements(ctx)
	if err != nil {
		return err
	}
	if total <= int64(l.cap) {
		return nil
	}
	return l.repo.TrimMovements(ctx, l.cap)
}

// appendMovement records one ledger entry and enforces the cap. Log failures
// never fail the stock operation itself.
func (l *Ledger) appendMovement(ctx context.Context, productID int64, mtype string, qty int, reason, orderRef string) {
	m := &domain.StockMovement{
		ProductID: productID,
		Type:      mtype,
		Quantity:  qty,
		Reason:    reason,
		OrderRef:  orderRef,
	}
	if err := l.repo.AppendMovement(ctx, m); err != nil {
		zap.L().Warn("inventory: failed to append movement",
			zap.Int64("product_id", productID), zap.String("type", mtype), zap.Error(err))
		return
	}
	if err := l.TrimLog(ctx); err != nil {
		zap.L().Warn("inventory: failed to trim movement log", zap.Error(err))
	}
}
