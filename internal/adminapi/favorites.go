package adminapi

import (
	"net/http"
	"strconv"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

type favoritePayload struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

func registerFavoriteRoutes() {
	webserver.ApiGET("/favorites", listFavorites)
	webserver.ApiGET("/favorites/:id", checkFavorite)
	webserver.ApiPOST("/favorites", addFavorite)
	webserver.ApiDELETE("/favorites/:id", removeFavorite)
}

func listFavorites(c echo.Context) error {
	return ok(c, svc.Favorites.List())
}

func checkFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	return ok(c, map[string]interface{}{"favorite": svc.Favorites.Contains(id)})
}

func addFavorite(c echo.Context) error {
	var payload favoritePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse favorite", err.Error())
	}
	p, err := svc.Catalog.Get(c.Request().Context(), payload.ProductID)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	svc.Favorites.Add(domain.FavoriteOf(*p))
	return ok(c, svc.Favorites.List())
}

func removeFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	svc.Favorites.Remove(id)
	return ok(c, svc.Favorites.List())
}
