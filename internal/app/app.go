package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/giftgeek/storefront/config"
	"github.com/giftgeek/storefront/internal/alerts"
	"github.com/giftgeek/storefront/internal/cart"
	"github.com/giftgeek/storefront/internal/catalog"
	"github.com/giftgeek/storefront/internal/checkout"
	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/internal/favorites"
	"github.com/giftgeek/storefront/internal/inventory"
	"github.com/giftgeek/storefront/internal/localstore"
	"github.com/giftgeek/storefront/internal/payment"
	"github.com/giftgeek/storefront/internal/toast"
	"github.com/giftgeek/storefront/internal/whatsapp"
	"github.com/giftgeek/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	cache     *localstore.Store
	sched     *cron.Cron
	bus       EventBus.Bus

	toasts      *toast.Notifier
	cartStore   *cart.Store
	favStore    *favorites.Store
	ledger      *inventory.Ledger
	catalogSvc  *catalog.Service
	paymentSvc  *payment.Service
	checkoutSvc *checkout.Service
	linker      *whatsapp.LinkBuilder
	mailer      *alerts.Mailer
	uploader    *cloudinary.Cloudinary
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ CacheProvider     = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Cache() *localstore.Store {
	return a.cache
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Bus returns the in-process event bus
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) Toasts() *toast.Notifier          { return a.toasts }
func (a *Application) CartStore() *cart.Store           { return a.cartStore }
func (a *Application) FavoritesStore() *favorites.Store { return a.favStore }
func (a *Application) Ledger() *inventory.Ledger        { return a.ledger }
func (a *Application) Catalog() *catalog.Service        { return a.catalogSvc }
func (a *Application) Payments() *payment.Service       { return a.paymentSvc }
func (a *Application) Checkout() *checkout.Service      { return a.checkoutSvc }
func (a *Application) ChatLink() *whatsapp.LinkBuilder  { return a.linker }
func (a *Application) Uploader() *cloudinary.Cloudinary { return a.uploader }

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)

	// Initialize metrics with workdir convention
	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	// Open the durable local blob store
	a.cache, err = localstore.Open(cfg.System.Workdir)
	if err != nil {
		zap.S().Panicf("failed to open local store: %v", err)
	}

	// wait for database initialization to complete
	go func() {
		time.Sleep(3 * time.Second)
		a.checkSuper()
		a.checkSettings()
		a.checkProducts()
		a.checkInventory()
	}()

	a.bus = EventBus.New()
	a.toasts = toast.New(a.bus, toast.DefaultTTL)
	a.cartStore = cart.New(a.cache, a.toasts)
	a.favStore = favorites.New(a.cache)
	a.ledger = inventory.NewLedger(inventory.NewGormRepository(a.gormDB))
	a.catalogSvc = catalog.NewService(catalog.NewGormProductRepository(a.gormDB), a.cache)
	a.paymentSvc = payment.NewService(
		payment.NewClient(cfg.Payment.GatewayURL, cfg.Payment.BearerToken),
		payment.NewGormTransactionRepository(a.gormDB),
		cfg.Payment.Currency,
	)
	a.checkoutSvc = checkout.NewService(
		checkout.NewGormOrderRepository(a.gormDB),
		a.ledger, a.paymentSvc, a.toasts, a.cache,
	)
	a.linker = whatsapp.NewLinkBuilder(cfg.Chat.SupportPhone)
	a.mailer = alerts.NewMailer(cfg.Mail)

	if cfg.Cloudinary.URL != "" {
		a.uploader, err = cloudinary.NewFromURL(cfg.Cloudinary.URL)
		if err != nil {
			zap.S().Warnf("cloudinary init failed, uploads disabled: %v", err)
		}
	}

	a.initJob()
}

func (a *Application) MigrateDB() error {
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	var cfg domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	var cfg domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfg).Error
	if err != nil {
		return 0
	}
	v, err := cast.ToInt64E(cfg.Value)
	if err != nil {
		return 0
	}
	return v
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.toasts != nil {
		a.toasts.Stop()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
