package database

import (
	"fmt"
	"time"

	"github.com/koptenko/caseshop_bot/internal/config"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true, // Explicit transactions only where invariants need them
		PrepareStmt:            true, // Cache prepared statements
		TranslateError:         true, // Surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.InventoryEntry{},
		&models.Order{},
		&models.Withdrawal{},
		&models.PromoCode{},
		&models.PromoRedemption{},
		&models.Review{},
		&models.LicenseKey{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedLicenseKeys inserts a starter key pool when the table is empty so the
// VPN shop is sellable out of the box. Real keys arrive via the import
// script.
func SeedLicenseKeys(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.LicenseKey{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding initial license keys...")
	keys := []models.LicenseKey{
		{Key: "VPN-KEY-001-30DAYS", PlanID: 1},
		{Key: "VPN-KEY-002-30DAYS", PlanID: 1},
		{Key: "VPN-KEY-003-30DAYS", PlanID: 1},
		{Key: "VPN-KEY-004-90DAYS", PlanID: 2},
		{Key: "VPN-KEY-005-90DAYS", PlanID: 2},
		{Key: "VPN-KEY-006-365DAYS", PlanID: 3},
		{Key: "VPN-KEY-007-365DAYS", PlanID: 3},
	}

	return db.Create(&keys).Error
}
