package toast

import (
	"testing"
	"time"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushKeepsInsertionOrder(t *testing.T) {
	n := New(nil, time.Minute)
	defer n.Stop()

	n.Success("first", "a")
	n.Error("second", "b")
	n.Info("third", "c")

	list := n.List()
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "third", list[2].Title)
	assert.Equal(t, domain.ToastSuccess, list[0].Severity)
	assert.Equal(t, domain.ToastError, list[1].Severity)
}

func TestDismissIsIdempotent(t *testing.T) {
	n := New(nil, time.Minute)
	defer n.Stop()

	pushed := n.Warning("low stock", "candle")
	require.Len(t, n.List(), 1)

	n.Dismiss(pushed.ID)
	assert.Empty(t, n.List())

	n.Dismiss(pushed.ID)
	n.Dismiss(999999)
	assert.Empty(t, n.List())
}

func TestToastsExpireAfterTTL(t *testing.T) {
	n := New(nil, 20*time.Millisecond)
	defer n.Stop()

	n.Info("fleeting", "gone soon")
	require.Len(t, n.List(), 1)

	assert.Eventually(t, func() bool {
		return len(n.List()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestDismissCancelsExpiryTimer(t *testing.T) {
	n := New(nil, 20*time.Millisecond)
	defer n.Stop()

	first := n.Info("one", "")
	n.Dismiss(first.ID)

	// a new toast must not be affected by the cancelled timer
	n.Info("two", "")
	time.Sleep(5 * time.Millisecond)
	assert.Len(t, n.List(), 1)
}
