package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/giftgeek/storefront/internal/checkout"
	"github.com/giftgeek/storefront/internal/payment"
	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

type checkoutPayload struct {
	Customer string `json:"customer" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/checkout", placeOrder)
	webserver.ApiGET("/payments/:orderRef", paymentStatus)
	webserver.AdminGET("/orders", listOrders)
	webserver.AdminGET("/orders/:orderRef", getOrder)
}

// placeOrder checks out the current cart: reserve, charge, confirm. The cart
// is cleared only when the order settles.
func placeOrder(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout", err.Error())
	}
	payload.Customer = strings.TrimSpace(payload.Customer)
	if payload.Customer == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Customer name is required", nil)
	}

	order, err := svc.Checkout.PlaceOrder(c.Request().Context(), checkout.PlaceOrderRequest{
		Customer: payload.Customer,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Items:    svc.Cart.Items(),
	})
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyOrder) {
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
		}
		if errors.Is(err, checkout.ErrInsufficientStock) {
			return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough available stock", err.Error())
		}
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			// pass the upstream error envelope through verbatim
			return c.JSONBlob(http.StatusInternalServerError, []byte(gwErr.Body))
		}
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Failed to place order", err.Error())
	}

	svc.Cart.Clear()
	return ok(c, order)
}

// paymentStatus polls the mirrored gateway transaction for an order.
func paymentStatus(c echo.Context) error {
	orderRef := c.Param("orderRef")
	txn, err := svc.Payments.Poll(c.Request().Context(), orderRef)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			return c.JSONBlob(http.StatusInternalServerError, []byte(gwErr.Body))
		}
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found", nil)
	}
	return ok(c, txn)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, total, err := svc.Checkout.Orders(c.Request().Context(), page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	order, err := svc.Checkout.Order(c.Request().Context(), c.Param("orderRef"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, order)
}
