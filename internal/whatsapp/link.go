// Package whatsapp builds one-way chat hand-off links: a wa.me deep link
// with a pre-filled message, no session, no response handling.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giftgeek/storefront/internal/domain"
)

const linkBase = "https://wa.me/"

// LinkBuilder constructs deep links for the support chat hand-off.
type LinkBuilder struct {
	// SupportPhone in international format without plus or separators.
	SupportPhone string
}

// NewLinkBuilder creates a builder for the configured support number.
func NewLinkBuilder(supportPhone string) *LinkBuilder {
	return &LinkBuilder{SupportPhone: sanitizePhone(supportPhone)}
}

// ProductLink returns a deep link opening a chat with a pre-filled message
// about the product.
func (b *LinkBuilder) ProductLink(p domain.Product) string {
	msg := fmt.Sprintf("Hi! I'm interested in %s (%.2f). Support line: %s", p.Name, p.Price, b.SupportPhone)
	return b.Link(msg)
}

// Link returns a deep link with the given pre-filled text.
func (b *LinkBuilder) Link(text string) string {
	return linkBase + b.SupportPhone + "?text=" + url.QueryEscape(text)
}

func sanitizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
