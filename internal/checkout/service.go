// Package checkout places orders against the inventory ledger: every line is
// reserved before the order is charged, confirmed on settlement and released
// on failure, so available = stock - reserved holds across the whole flow.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/localstore"
	"github.com/giftgeek/storefront/pkg/common"
	"go.uber.org/zap"
)

// ErrInsufficientStock is returned when a line cannot be reserved.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrEmptyOrder is returned when a checkout carries no lines.
var ErrEmptyOrder = errors.New("order has no items")

// StockLedger is the inventory port used during checkout.
type StockLedger interface {
	Reserve(ctx context.Context, productID int64, qty int, orderRef string) (bool, error)
	ConfirmSale(ctx context.Context, productID int64, qty int, orderRef string) (bool, error)
	Release(ctx context.Context, productID int64, qty int, orderRef string) (bool, error)
}

// Charger is the payment port used during checkout.
type Charger interface {
	Charge(ctx context.Context, orderRef string, amount float64, customer, phone string) (*domain.PaymentTransaction, error)
}

// Notifier is the toast side channel.
type Notifier interface {
	Success(title, message string) domain.Toast
	Error(title, message string) domain.Toast
}

// Cache mirrors the order list into the durable local store.
type Cache interface {
	PutJSON(key string, v interface{}) error
	GetJSON(key string, out interface{}) (bool, error)
}

// PlaceOrderRequest carries the checkout payload.
type PlaceOrderRequest struct {
	Customer string `json:"customer"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Items    []domain.CartItem
}

// Service drives the order flow.
type Service struct {
	orders  OrderRepository
	ledger  StockLedger
	charger Charger
	toasts  Notifier
	cache   Cache
}

// NewService creates a checkout service. Toasts and cache may be nil.
func NewService(orders OrderRepository, ledger StockLedger, charger Charger, toasts Notifier, cache Cache) *Service {
	return &Service{orders: orders, ledger: ledger, charger: charger, toasts: toasts, cache: cache}
}

// PlaceOrder reserves stock for every line, records the order, charges the
// gateway and settles the reservations. A reservation failure aborts with no
// partial holds left behind; a charge failure releases everything.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderRef := fmt.Sprintf("ORD-%d", common.UUIDint64())

	reserved := make([]domain.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		ok, err := s.ledger.Reserve(ctx, item.ProductID, item.Quantity, orderRef)
		if err == nil && !ok {
			err = ErrInsufficientStock
		}
		if err != nil {
			s.releaseAll(ctx, reserved, orderRef)
			if s.toasts != nil {
				s.toasts.Error("Checkout failed", fmt.Sprintf("%s is out of stock", item.Name))
			}
			return nil, fmt.Errorf("reserve %q: %w", item.Name, err)
		}
		reserved = append(reserved, item)
	}

	order := &domain.Order{
		OrderRef: orderRef,
		Customer: req.Customer,
		Phone:    req.Phone,
		Address:  req.Address,
		Status:   domain.OrderPending,
	}
	for _, item := range req.Items {
		order.Total += item.Subtotal()
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseAll(ctx, reserved, orderRef)
		return nil, err
	}

	if _, err := s.charger.Charge(ctx, orderRef, order.Total, req.Customer, req.Phone); err != nil {
		s.releaseAll(ctx, reserved, orderRef)
		order.Status = domain.OrderFailed
		if uerr := s.orders.UpdateStatus(ctx, orderRef, domain.OrderFailed); uerr != nil {
			zap.L().Error("checkout: failed to mark order failed", zap.String("order_ref", orderRef), zap.Error(uerr))
		}
		if s.toasts != nil {
			s.toasts.Error("Payment failed", orderRef)
		}
		return order, err
	}

	for _, item := range reserved {
		if ok, err := s.ledger.ConfirmSale(ctx, item.ProductID, item.Quantity, orderRef); err != nil || !ok {
			zap.L().Error("checkout: failed to confirm sale",
				zap.String("order_ref", orderRef), zap.Int64("product_id", item.ProductID), zap.Error(err))
		}
	}
	order.Status = domain.OrderPaid
	if err := s.orders.UpdateStatus(ctx, orderRef, domain.OrderPaid); err != nil {
		zap.L().Error("checkout: failed to mark order paid", zap.String("order_ref", orderRef), zap.Error(err))
	}

	s.mirrorOrders(ctx)
	if s.toasts != nil {
		s.toasts.Success("Order placed", orderRef)
	}
	return order, nil
}

// Order retrieves one order by reference.
func (s *Service) Order(ctx context.Context, orderRef string) (*domain.Order, error) {
	return s.orders.GetByRef(ctx, orderRef)
}

// Orders lists orders with pagination.
func (s *Service) Orders(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	return s.orders.List(ctx, page, pageSize)
}

func (s *Service) releaseAll(ctx context.Context, items []domain.CartItem, orderRef string) {
	for _, item := range items {
		if _, err := s.ledger.Release(ctx, item.ProductID, item.Quantity, orderRef); err != nil {
			zap.L().Error("checkout: failed to release reservation",
				zap.String("order_ref", orderRef), zap.Int64("product_id", item.ProductID), zap.Error(err))
		}
	}
}

// mirrorOrders refreshes the local orders blob, best effort.
func (s *Service) mirrorOrders(ctx context.Context) {
	if s.cache == nil {
		return
	}
	rows, _, err := s.orders.List(ctx, 1, 100)
	if err != nil {
		return
	}
	if err := s.cache.PutJSON(localstore.KeyOrders, rows); err != nil {
		zap.L().Warn("checkout: failed to mirror orders", zap.Error(err))
	}
}
