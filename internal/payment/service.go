// Package payment forwards transactions to the hosted gateway and mirrors
// every result into the document store.
package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Gateway is the outbound client port, satisfied by Client.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*GatewayResponse, string, error)
	Status(ctx context.Context, transactionRef string) (*GatewayResponse, string, error)
}

// Service mirrors gateway transactions and polls pending ones.
type Service struct {
	gateway  Gateway
	repo     TransactionRepository
	currency string
}

// NewService creates a payment service.
func NewService(gateway Gateway, repo TransactionRepository, currency string) *Service {
	if currency == "" {
		currency = "IDR"
	}
	return &Service{gateway: gateway, repo: repo, currency: currency}
}

// Charge forwards a transaction and mirrors the outcome. The mirror row is
// written for failures too, carrying the upstream body verbatim.
func (s *Service) Charge(ctx context.Context, orderRef string, amount float64, customer, phone string) (*domain.PaymentTransaction, error) {
	txn := &domain.PaymentTransaction{
		OrderRef: orderRef,
		Amount:   amount,
		Currency: s.currency,
		Status:   domain.PaymentPending,
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, err
	}

	resp, body, err := s.gateway.Charge(ctx, ChargeRequest{
		OrderRef: orderRef,
		Amount:   amount,
		Currency: s.currency,
		Customer: customer,
		Phone:    phone,
	})
	txn.Payload = body
	if err != nil {
		txn.Status = domain.PaymentFailed
		txn.Message = err.Error()
		if uerr := s.repo.Update(ctx, txn); uerr != nil {
			zap.L().Error("payment: failed to mirror failed charge", zap.String("order_ref", orderRef), zap.Error(uerr))
		}
		return txn, err
	}

	txn.GatewayRef = resp.TransactionRef
	txn.Message = resp.Message
	txn.Status = normalizeStatus(resp.Status)
	if err := s.repo.Update(ctx, txn); err != nil {
		zap.L().Error("payment: failed to mirror charge result", zap.String("order_ref", orderRef), zap.Error(err))
	}
	if txn.Status == domain.PaymentFailed {
		return txn, errors.New(resp.Message)
	}
	return txn, nil
}

// Poll refreshes one mirrored transaction from the gateway.
func (s *Service) Poll(ctx context.Context, orderRef string) (*domain.PaymentTransaction, error) {
	txn, err := s.repo.GetByOrderRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if txn.GatewayRef == "" || txn.Status != domain.PaymentPending {
		return txn, nil
	}

	resp, body, err := s.gateway.Status(ctx, txn.GatewayRef)
	if err != nil {
		return txn, err
	}
	txn.Status = normalizeStatus(resp.Status)
	txn.Message = resp.Message
	txn.Payload = body
	if err := s.repo.Update(ctx, txn); err != nil {
		return txn, err
	}
	return txn, nil
}

// PollPending refreshes all pending mirrors, fanned out over a worker pool.
func (s *Service) PollPending(ctx context.Context, workers int) {
	pending, err := s.repo.ListPending(ctx, 200)
	if err != nil {
		zap.L().Error("payment: failed to list pending transactions", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}
	if workers <= 0 {
		workers = 10
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		zap.L().Error("payment: failed to create poll pool", zap.Error(err))
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, txn := range pending {
		txn := txn
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.Poll(ctx, txn.OrderRef); err != nil {
				zap.L().Warn("payment: poll failed",
					zap.String("order_ref", txn.OrderRef), zap.Error(err))
			}
		}); err != nil {
			wg.Done()
		}
	}
	wg.Wait()
}

func normalizeStatus(status string) string {
	switch status {
	case "success", "settlement", "paid", "captured":
		return domain.PaymentSuccess
	case "failed", "deny", "cancel", "expire":
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
