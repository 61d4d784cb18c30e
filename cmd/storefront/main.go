package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftgeek/storefront/config"
	"github.com/giftgeek/storefront/internal/adminapi"
	"github.com/giftgeek/storefront/internal/app"
	"github.com/giftgeek/storefront/internal/webserver"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	cfile    = flag.String("c", "/etc/storefront.yml", "config file")
	showVer  = flag.Bool("v", false, "show version")
	initDrop = flag.Bool("initdb", false, "drop and recreate all tables")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println(version)
		return
	}

	_ = godotenv.Load()

	cfg := config.LoadConfig(*cfile)
	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create workdir %s: %v\n", cfg.System.Workdir, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDrop {
		application.DropAll()
		if err := application.MigrateDB(); err != nil {
			zap.S().Panicf("database rebuild failed: %v", err)
		}
		zap.L().Info("database rebuilt")
	}

	webserver.Init(cfg, application.DB())
	adminapi.Setup(&adminapi.Services{
		Catalog:      application.Catalog(),
		Cart:         application.CartStore(),
		Favorites:    application.FavoritesStore(),
		Ledger:       application.Ledger(),
		Checkout:     application.Checkout(),
		Payments:     application.Payments(),
		Toasts:       application.Toasts(),
		ChatLink:     application.ChatLink(),
		Uploader:     application.Uploader(),
		UploadFolder: cfg.Cloudinary.Folder,
		WebSecret:    cfg.Web.Secret,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("webserver error: %v", err)
		}
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
