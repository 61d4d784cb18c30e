// Package adminapi exposes the storefront and admin panel HTTP API on top of
// the webserver route groups.
package adminapi

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/giftgeek/storefront/internal/cart"
	"github.com/giftgeek/storefront/internal/catalog"
	"github.com/giftgeek/storefront/internal/checkout"
	"github.com/giftgeek/storefront/internal/favorites"
	"github.com/giftgeek/storefront/internal/inventory"
	"github.com/giftgeek/storefront/internal/payment"
	"github.com/giftgeek/storefront/internal/toast"
	"github.com/giftgeek/storefront/internal/whatsapp"
)

// Services bundles everything the handlers need.
type Services struct {
	Catalog   *catalog.Service
	Cart      *cart.Store
	Favorites *favorites.Store
	Ledger    *inventory.Ledger
	Checkout  *checkout.Service
	Payments  *payment.Service
	Toasts    *toast.Notifier
	ChatLink  *whatsapp.LinkBuilder

	Uploader     *cloudinary.Cloudinary
	UploadFolder string
	WebSecret    string
}

var svc *Services

// Setup stores the service bundle and registers all routes. webserver.Init
// must have run first.
func Setup(s *Services) {
	svc = s
	registerAuthRoutes()
	registerProductRoutes()
	registerCartRoutes()
	registerFavoriteRoutes()
	registerInventoryRoutes()
	registerOrderRoutes()
	registerToastRoutes()
	registerChatRoutes()
}
