package adminapi

import (
	"net/http"
	"strconv"

	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerChatRoutes() {
	webserver.ApiGET("/chatlink", chatLink)
}

// chatLink returns a wa.me deep link with a pre-filled message about the
// product. One-way hand-off, nothing is sent from here.
func chatLink(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "product_id is required", nil)
	}
	p, err := svc.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, map[string]interface{}{"link": svc.ChatLink.ProductLink(*p)})
}
