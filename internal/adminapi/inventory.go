package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

type stockPayload struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason"`
	OrderRef string `json:"order_ref"`
}

type thresholdPayload struct {
	Threshold int `json:"threshold" validate:"min=0"`
}

// movementCSV is the export row shape.
type movementCSV struct {
	ID        int64  `csv:"id"`
	ProductID int64  `csv:"product_id"`
	Type      string `csv:"type"`
	Quantity  int    `csv:"quantity"`
	Reason    string `csv:"reason"`
	OrderRef  string `csv:"order_ref"`
	CreatedAt string `csv:"created_at"`
}

func registerInventoryRoutes() {
	webserver.AdminGET("/inventory", listInventory)
	webserver.AdminGET("/inventory/:id", getInventory)
	webserver.AdminPOST("/inventory/:id/add-stock", addStock)
	webserver.AdminPOST("/inventory/:id/reserve", reserveStock)
	webserver.AdminPOST("/inventory/:id/confirm", confirmSale)
	webserver.AdminPOST("/inventory/:id/release", releaseStock)
	webserver.AdminPUT("/inventory/:id/threshold", setThreshold)
	webserver.AdminGET("/inventory/movements", listMovements)
	webserver.AdminGET("/inventory/movements/export", exportMovements)
}

func listInventory(c echo.Context) error {
	recs, err := svc.Ledger.Records(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inventory", err.Error())
	}
	return ok(c, recs)
}

func getInventory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	rec, err := svc.Ledger.Record(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory record not found", nil)
	}
	return ok(c, rec)
}

func addStock(c echo.Context) error {
	id, payload, errMsg := bindStockRequest(c)
	if errMsg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", errMsg, nil)
	}
	reason := payload.Reason
	if reason == "" {
		reason = "stock received"
	}
	if err := svc.Ledger.AddStock(c.Request().Context(), id, payload.Quantity, reason); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add stock", err.Error())
	}
	return getInventory(c)
}

func reserveStock(c echo.Context) error {
	id, payload, errMsg := bindStockRequest(c)
	if errMsg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", errMsg, nil)
	}
	done, err := svc.Ledger.Reserve(c.Request().Context(), id, payload.Quantity, payload.OrderRef)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reserve stock", err.Error())
	}
	if !done {
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough available stock", nil)
	}
	return getInventory(c)
}

func confirmSale(c echo.Context) error {
	id, payload, errMsg := bindStockRequest(c)
	if errMsg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", errMsg, nil)
	}
	done, err := svc.Ledger.ConfirmSale(c.Request().Context(), id, payload.Quantity, payload.OrderRef)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to confirm sale", err.Error())
	}
	if !done {
		return fail(c, http.StatusConflict, "INSUFFICIENT_RESERVATION", "Reservation does not cover quantity", nil)
	}
	return getInventory(c)
}

func releaseStock(c echo.Context) error {
	id, payload, errMsg := bindStockRequest(c)
	if errMsg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", errMsg, nil)
	}
	done, err := svc.Ledger.Release(c.Request().Context(), id, payload.Quantity, payload.OrderRef)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to release stock", err.Error())
	}
	if !done {
		return fail(c, http.StatusConflict, "INSUFFICIENT_RESERVATION", "Reservation does not cover quantity", nil)
	}
	return getInventory(c)
}

func setThreshold(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload thresholdPayload
	if err := c.Bind(&payload); err != nil || payload.Threshold < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Threshold must be >= 0", nil)
	}
	if err := svc.Ledger.SetThreshold(c.Request().Context(), id, payload.Threshold); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory record not found", nil)
	}
	return getInventory(c)
}

func listMovements(c echo.Context) error {
	productID, _ := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := svc.Ledger.Movements(c.Request().Context(), productID, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query movements", err.Error())
	}
	return ok(c, rows)
}

// exportMovements streams the movement log as a CSV download.
func exportMovements(c echo.Context) error {
	productID, _ := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	rows, err := svc.Ledger.Movements(c.Request().Context(), productID, 1000)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query movements", err.Error())
	}

	out := make([]movementCSV, 0, len(rows))
	for _, m := range rows {
		out = append(out, movementCSV{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			OrderRef:  m.OrderRef,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=stock-movements-%s.csv", time.Now().Format("20060102")))
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&out, c.Response())
}

func bindStockRequest(c echo.Context) (int64, stockPayload, string) {
	var payload stockPayload
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, payload, "Invalid product ID"
	}
	if err := c.Bind(&payload); err != nil {
		return 0, payload, "Unable to parse stock request"
	}
	if payload.Quantity <= 0 {
		return 0, payload, "Quantity must be > 0"
	}
	return id, payload, ""
}
