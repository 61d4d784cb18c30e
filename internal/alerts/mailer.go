// Package alerts sends operational email notifications.
package alerts

import (
	"fmt"
	"strings"

	"github.com/giftgeek/storefront/config"
	"github.com/giftgeek/storefront/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends low-stock alerts to the shop operator.
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer creates a mailer from config. A disabled config yields a mailer
// whose sends are no-ops.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendLowStock emails the list of low-stock products.
func (m *Mailer) SendLowStock(records []domain.InventoryRecord) error {
	if !m.cfg.Enabled || len(records) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString("The following products are low on stock:\n\n")
	for _, rec := range records {
		body.WriteString(fmt.Sprintf("- product %d: available %d (stock %d, reserved %d, threshold %d)\n",
			rec.ProductID, rec.Available(), rec.Stock, rec.Reserved, rec.LowStockThreshold))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.AlertTo)
	msg.SetHeader("Subject", fmt.Sprintf("Low stock alert (%d products)", len(records)))
	msg.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Error("alerts: failed to send low stock mail", zap.Error(err))
		return err
	}
	return nil
}
