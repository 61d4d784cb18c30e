package domain

import "time"

// Stock movement types for the inventory ledger.
const (
	MovementIn       = "IN"
	MovementOut      = "OUT"
	MovementReserved = "RESERVED"
	MovementReleased = "RELEASED"
)

// MovementLogCap bounds the movement log to the most recent entries,
// oldest dropped first.
const MovementLogCap = 1000

// InventoryRecord tracks per-product stock counters. The invariant
// available = stock - reserved holds after every ledger operation, and
// reserved never exceeds stock.
type InventoryRecord struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	ProductID         int64     `gorm:"uniqueIndex" json:"product_id"`
	Stock             int       `json:"stock"`
	Reserved          int       `json:"reserved"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Available is the quantity that can still be reserved.
func (r InventoryRecord) Available() int {
	return r.Stock - r.Reserved
}

// LowStock reports whether available stock is at or below the threshold.
func (r InventoryRecord) LowStock() bool {
	return r.Available() <= r.LowStockThreshold
}

// StockMovement is one append-only ledger entry. Entries are never updated
// or deleted individually; the log is only truncated by the retention cap.
type StockMovement struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProductID int64     `gorm:"index" json:"product_id"`
	Type      string    `gorm:"size:16" json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `gorm:"size:255" json:"reason"`
	OrderRef  string    `gorm:"size:64;index" json:"order_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
