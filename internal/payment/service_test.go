package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTxnRepo struct {
	mu   sync.Mutex
	txns map[string]*domain.PaymentTransaction
}

func newMemTxnRepo() *memTxnRepo {
	return &memTxnRepo{txns: make(map[string]*domain.PaymentTransaction)}
}

func (m *memTxnRepo) Create(ctx context.Context, txn *domain.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *txn
	m.txns[txn.OrderRef] = &c
	return nil
}

func (m *memTxnRepo) Update(ctx context.Context, txn *domain.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *txn
	m.txns[txn.OrderRef] = &c
	return nil
}

func (m *memTxnRepo) GetByOrderRef(ctx context.Context, orderRef string) (*domain.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[orderRef]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	c := *txn
	return &c, nil
}

func (m *memTxnRepo) ListPending(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.PaymentTransaction
	for _, txn := range m.txns {
		if txn.Status == domain.PaymentPending {
			c := *txn
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeGateway struct {
	chargeStatus string
	chargeErr    error
	statusStatus string
}

func (f *fakeGateway) Charge(ctx context.Context, req ChargeRequest) (*GatewayResponse, string, error) {
	if f.chargeErr != nil {
		return nil, `{"error":"gateway down"}`, f.chargeErr
	}
	return &GatewayResponse{Status: f.chargeStatus, TransactionRef: "GW-1"}, `{"status":"` + f.chargeStatus + `"}`, nil
}

func (f *fakeGateway) Status(ctx context.Context, transactionRef string) (*GatewayResponse, string, error) {
	return &GatewayResponse{Status: f.statusStatus, TransactionRef: transactionRef}, "", nil
}

func TestChargeMirrorsSuccess(t *testing.T) {
	ctx := context.Background()
	repo := newMemTxnRepo()
	s := NewService(&fakeGateway{chargeStatus: "settlement"}, repo, "IDR")

	txn, err := s.Charge(ctx, "ORD-1", 5000, "Ayu", "628123")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, txn.Status)
	assert.Equal(t, "GW-1", txn.GatewayRef)

	stored, err := repo.GetByOrderRef(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, stored.Status)
	assert.Equal(t, "IDR", stored.Currency)
	assert.Equal(t, 5000.0, stored.Amount)
}

func TestChargeMirrorsGatewayFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemTxnRepo()
	s := NewService(&fakeGateway{chargeErr: errors.New("timeout")}, repo, "IDR")

	txn, err := s.Charge(ctx, "ORD-2", 5000, "Ayu", "628123")
	require.Error(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, domain.PaymentFailed, txn.Status)

	// the failure is mirrored with the upstream body intact
	stored, err := repo.GetByOrderRef(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, stored.Status)
	assert.Equal(t, `{"error":"gateway down"}`, stored.Payload)
}

func TestChargeDeniedStatusIsError(t *testing.T) {
	s := NewService(&fakeGateway{chargeStatus: "deny"}, newMemTxnRepo(), "IDR")
	txn, err := s.Charge(context.Background(), "ORD-3", 100, "Ayu", "")
	require.Error(t, err)
	assert.Equal(t, domain.PaymentFailed, txn.Status)
}

func TestPollSettlesPendingTransaction(t *testing.T) {
	ctx := context.Background()
	repo := newMemTxnRepo()
	gw := &fakeGateway{chargeStatus: "pending", statusStatus: "settlement"}
	s := NewService(gw, repo, "IDR")

	_, err := s.Charge(ctx, "ORD-4", 100, "Ayu", "")
	require.NoError(t, err)

	txn, err := s.Poll(ctx, "ORD-4")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, txn.Status)
}

func TestPollSkipsSettledTransaction(t *testing.T) {
	ctx := context.Background()
	repo := newMemTxnRepo()
	gw := &fakeGateway{chargeStatus: "settlement", statusStatus: "deny"}
	s := NewService(gw, repo, "IDR")

	_, err := s.Charge(ctx, "ORD-5", 100, "Ayu", "")
	require.NoError(t, err)

	// already settled, the gateway must not be consulted again
	txn, err := s.Poll(ctx, "ORD-5")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, txn.Status)
}

func TestPollPendingFansOut(t *testing.T) {
	ctx := context.Background()
	repo := newMemTxnRepo()
	gw := &fakeGateway{chargeStatus: "pending", statusStatus: "settlement"}
	s := NewService(gw, repo, "IDR")

	for _, ref := range []string{"ORD-6", "ORD-7", "ORD-8"} {
		_, err := s.Charge(ctx, ref, 100, "Ayu", "")
		require.NoError(t, err)
	}

	s.PollPending(ctx, 2)

	for _, ref := range []string{"ORD-6", "ORD-7", "ORD-8"} {
		txn, err := repo.GetByOrderRef(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentSuccess, txn.Status)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentSuccess, normalizeStatus("paid"))
	assert.Equal(t, domain.PaymentFailed, normalizeStatus("expire"))
	assert.Equal(t, domain.PaymentPending, normalizeStatus("challenge"))
}
