package domain

import "time"

// Toast severities.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
	ToastWarning = "warning"
)

// Toast is a transient user notification. Toasts are purely in-memory:
// created, auto-expired after a fixed delay, never persisted.
type Toast struct {
	ID        int64     `json:"id"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
