package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLinkBuilderSanitizesPhone(t *testing.T) {
	b := NewLinkBuilder("+62 812-3456-7890")
	assert.Equal(t, "6281234567890", b.SupportPhone)
}

func TestLinkEncodesText(t *testing.T) {
	b := NewLinkBuilder("6281234567890")
	link := b.Link("hello & welcome")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/6281234567890?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "hello & welcome", u.Query().Get("text"))
}

func TestProductLink(t *testing.T) {
	b := NewLinkBuilder("6281234567890")
	link := b.ProductLink(domain.Product{Name: "LED desk lamp", Price: 159000})

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "LED desk lamp")
	assert.Contains(t, text, "159000.00")
	assert.Contains(t, text, "6281234567890")
}
