package adminapi

import (
	"net/http"
	"strconv"

	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerToastRoutes() {
	webserver.ApiGET("/toasts", listToasts)
	webserver.ApiDELETE("/toasts/:id", dismissToast)
}

func listToasts(c echo.Context) error {
	return ok(c, svc.Toasts.List())
}

func dismissToast(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid toast ID", nil)
	}
	svc.Toasts.Dismiss(id)
	return ok(c, svc.Toasts.List())
}
