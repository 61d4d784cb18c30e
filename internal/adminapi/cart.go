package adminapi

import (
	"net/http"
	"strconv"

	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

type cartAddPayload struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

type cartQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPUT("/cart/items/:id", updateCartItem)
	webserver.ApiDELETE("/cart/items/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

func getCart(c echo.Context) error {
	return ok(c, map[string]interface{}{
		"items": svc.Cart.Items(),
		"total": svc.Cart.Total(),
		"count": svc.Cart.ItemsCount(),
	})
}

func addCartItem(c echo.Context) error {
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	p, err := svc.Catalog.Get(c.Request().Context(), payload.ProductID)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	svc.Cart.Add(*p)
	return getCart(c)
}

func updateCartItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload cartQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	svc.Cart.UpdateQuantity(id, payload.Quantity)
	return getCart(c)
}

func removeCartItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	svc.Cart.Remove(id)
	return getCart(c)
}

func clearCart(c echo.Context) error {
	svc.Cart.Clear()
	return getCart(c)
}
