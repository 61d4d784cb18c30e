package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/giftgeek/storefront/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "storefront"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)
	if !resetPassword && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}
	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings seed the settings table on first boot.
var defaultSettings = []domain.SysConfig{
	{Sort: 1, Type: "system", Name: "ShopName", Value: "Gift & Geek", Remark: "Storefront display name"},
	{Sort: 2, Type: "inventory", Name: "LowStockThreshold", Value: "3", Remark: "Default low stock threshold"},
	{Sort: 3, Type: "scheduler", Name: "max_workers", Value: "10", Remark: "Background job worker limit"},
	{Sort: 4, Type: "payment", Name: "PollBatch", Value: "200", Remark: "Pending payment poll batch size"},
}

func (a *Application) checkSettings() {
	for _, s := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", s.Type, s.Name).
			Count(&count)
		if count == 0 {
			s.ID = common.UUIDint64()
			a.gormDB.Create(&s)
			zap.L().Info("initialized config",
				zap.String("key", s.Type+"."+s.Name),
				zap.String("default", s.Value))
		}
	}
}

// checkProducts initializes demo catalog entries for both brands
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "Handmade scented candle", Price: 45000, Category: domain.CategoryGift,
			Description: "Soy wax candle with dried flowers"},
		{Name: "Mini polaroid album", Price: 65000, Category: domain.CategoryGift,
			Description: "Keepsake album for 40 photos"},
		{Name: "Wireless earbuds", Price: 299000, Category: domain.CategoryTech,
			Description: "Bluetooth 5.3, 24h battery case"},
		{Name: "LED desk lamp", Price: 159000, Category: domain.CategoryTech,
			Description: "Three color temperatures, USB-C"},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}

// checkInventory ensures every catalog product has a ledger record
func (a *Application) checkInventory() {
	var products []domain.Product
	if err := a.gormDB.Find(&products).Error; err != nil {
		zap.L().Error("failed to list products for inventory check", zap.Error(err))
		return
	}

	ctx := context.Background()
	for _, p := range products {
		var count int64
		a.gormDB.Model(&domain.InventoryRecord{}).Where("product_id = ?", p.ID).Count(&count)
		if count == 0 {
			if err := a.ledger.AddStock(ctx, p.ID, 10, "initial stock"); err != nil {
				zap.L().Error("failed to seed inventory", zap.Int64("product_id", p.ID), zap.Error(err))
			}
		}
	}
}
