// Package webserver owns the echo instance: route groups, middleware and
// lifecycle. Handlers register themselves through the package-level Api* and
// Admin* helpers.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giftgeek/storefront/config"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBKey is the echo context key holding the request-scoped *gorm.DB.
const DBKey = "gorm_db"

type WebServer struct {
	root  *echo.Echo
	api   *echo.Group
	admin *echo.Group
	cfg   *config.AppConfig
}

var server *WebServer

// Init builds the server. Must be called before any route registration.
func Init(cfg *config.AppConfig, db *gorm.DB) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBKey, db)
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	})

	api := e.Group("/api")
	admin := e.Group("/admin/api")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
	}))

	server = &WebServer{root: e, api: api, admin: admin, cfg: cfg}
}

// Listen starts serving and blocks.
func Listen() error {
	addr := fmt.Sprintf("%s:%d", server.cfg.Web.Host, server.cfg.Web.Port)
	zap.L().Info("webserver listening", zap.String("addr", addr))
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

// PubPOST registers an unauthenticated route outside the API groups.
func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// ApiGET registers a public storefront GET route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// AdminGET registers a JWT-protected admin GET route.
func AdminGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}
