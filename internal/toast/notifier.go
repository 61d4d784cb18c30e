// Package toast keeps the ephemeral queue of user-facing notifications.
// Toasts auto-expire after a fixed delay; manual dismissal cancels the
// pending expiry timer so a reused id is never touched by a stale callback.
package toast

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
)

// Event bus topics.
const (
	TopicPushed    = "toast.pushed"
	TopicDismissed = "toast.dismissed"
)

// DefaultTTL matches the auto-dismiss delay of the storefront UI.
const DefaultTTL = 3 * time.Second

// Notifier is a strict insertion-order toast queue.
type Notifier struct {
	mu     sync.Mutex
	toasts []domain.Toast
	timers map[int64]*time.Timer
	ttl    time.Duration
	bus    EventBus.Bus
}

// New creates a notifier. A nil bus disables event publishing.
func New(bus EventBus.Bus, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		timers: make(map[int64]*time.Timer),
		ttl:    ttl,
		bus:    bus,
	}
}

// Push enqueues a toast and schedules its expiry.
func (n *Notifier) Push(severity, title, message, icon string) domain.Toast {
	t := domain.Toast{
		ID:        common.UUIDint64(),
		Severity:  severity,
		Title:     title,
		Message:   message,
		Icon:      icon,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	n.timers[t.ID] = time.AfterFunc(n.ttl, func() { n.Dismiss(t.ID) })
	n.mu.Unlock()

	if n.bus != nil {
		n.bus.Publish(TopicPushed, t)
	}
	return t
}

// Success enqueues a success toast.
func (n *Notifier) Success(title, message string) domain.Toast {
	return n.Push(domain.ToastSuccess, title, message, "")
}

// Error enqueues an error toast.
func (n *Notifier) Error(title, message string) domain.Toast {
	return n.Push(domain.ToastError, title, message, "")
}

// Info enqueues an info toast.
func (n *Notifier) Info(title, message string) domain.Toast {
	return n.Push(domain.ToastInfo, title, message, "")
}

// Warning enqueues a warning toast.
func (n *Notifier) Warning(title, message string) domain.Toast {
	return n.Push(domain.ToastWarning, title, message, "")
}

// Dismiss removes a toast and cancels its expiry timer. Dismissing an
// unknown or already-expired id is a no-op.
func (n *Notifier) Dismiss(id int64) {
	n.mu.Lock()
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	found := false
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	n.toasts = kept
	n.mu.Unlock()

	if found && n.bus != nil {
		n.bus.Publish(TopicDismissed, id)
	}
}

// List returns the queued toasts in insertion order.
func (n *Notifier) List() []domain.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Stop cancels all pending expiry timers.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
}
