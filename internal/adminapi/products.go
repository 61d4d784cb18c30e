package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/giftgeek/storefront/internal/catalog"
	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

type productPayload struct {
	Name        string      `json:"name" validate:"required,min=1,max=200"`
	Price       interface{} `json:"price"`
	Images      []string    `json:"images"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

// registerProductRoutes registers catalog browsing and product CRUD.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.AdminGET("/products", adminListProducts)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
	webserver.AdminPOST("/products/upload", uploadProductImage)
}

// listProducts serves the storefront: newest first, local cache fallback.
func listProducts(c echo.Context) error {
	rows, err := svc.Catalog.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := svc.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func adminListProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.QueryParam("q"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"category":   "category",
		"created_at": "created_at",
	}
	sortCol, found := allowed[sortField]
	if !found {
		sortCol = "created_at"
	}

	rows, total, err := svc.Catalog.Page(c.Request().Context(), q, sortCol, order, page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p, msg := productFromPayload(payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}
	if err := svc.Catalog.Create(c.Request().Context(), p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	existing, err := svc.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, msg := productFromPayload(payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	existing.Name = p.Name
	existing.Price = p.Price
	existing.Images = p.Images
	existing.Category = p.Category
	existing.Description = p.Description

	if err := svc.Catalog.Update(c.Request().Context(), existing); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, existing)
}

func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := svc.Catalog.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// uploadProductImage pushes a multipart image to Cloudinary and returns the
// hosted URL.
func uploadProductImage(c echo.Context) error {
	if svc.Uploader == nil {
		return fail(c, http.StatusServiceUnavailable, "UPLOAD_DISABLED", "Image uploads are not configured", nil)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Image file is required", nil)
	}
	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to read image", err.Error())
	}
	defer src.Close()

	resp, err := svc.Uploader.Upload.Upload(c.Request().Context(), src, uploader.UploadParams{
		Folder: svc.UploadFolder,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to upload image", err.Error())
	}
	return ok(c, map[string]interface{}{"url": resp.SecureURL})
}

// productFromPayload validates and normalizes the loosely-typed payload
// through the catalog parsing boundary. A non-empty message means the
// payload was rejected.
func productFromPayload(payload productPayload) (*domain.Product, string) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return nil, "Name is required"
	}
	category := strings.ToLower(strings.TrimSpace(payload.Category))
	if category != domain.CategoryGift && category != domain.CategoryTech {
		return nil, "Category must be 'gift' or 'tech'"
	}

	p, err := catalog.ParseDocument(map[string]interface{}{
		"name":        payload.Name,
		"price":       payload.Price,
		"images":      payload.Images,
		"category":    category,
		"description": payload.Description,
	})
	if err != nil {
		return nil, "Price must be numeric"
	}
	if p.Price < 0 {
		return nil, "Price must be >= 0"
	}
	return &p, ""
}
