package domain

import "time"

// Order statuses.
const (
	OrderPending = "pending"
	OrderPaid    = "paid"
	OrderFailed  = "failed"
)

// Payment transaction statuses mirrored from the gateway.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

// Order is a confirmed checkout. Stock for every item is reserved before the
// order row is created and confirmed (or released) once payment settles.
type Order struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	OrderRef  string      `gorm:"size:64;uniqueIndex" json:"order_ref"`
	Customer  string      `gorm:"size:128" json:"customer"`
	Phone     string      `gorm:"size:32" json:"phone"`
	Address   string      `gorm:"size:512" json:"address"`
	Total     float64     `json:"total"`
	Status    string      `gorm:"size:16;index" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is one purchased line, a snapshot of the product at checkout.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"index" json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `gorm:"size:200" json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// PaymentTransaction mirrors one gateway transaction into the store.
type PaymentTransaction struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	OrderRef   string    `gorm:"size:64;index" json:"order_ref"`
	GatewayRef string    `gorm:"size:128" json:"gateway_ref"`
	Amount     float64   `json:"amount"`
	Currency   string    `gorm:"size:8" json:"currency"`
	Status     string    `gorm:"size:16;index" json:"status"`
	Message    string    `gorm:"size:1024" json:"message"`
	Payload    string    `gorm:"type:text" json:"payload,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
