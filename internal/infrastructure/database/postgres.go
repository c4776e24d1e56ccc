package database

import (
	"fmt"
	"log"

	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant entities
		&entity.Salon{},
		&entity.Branch{},

		// People
		&entity.Customer{},
		&entity.Staff{},

		// Catalog entities
		&entity.Service{},
		&entity.Product{},
		&entity.ProductVariant{},
		&entity.CustomerPackage{},
		&entity.CustomerPackageItem{},

		// Pricing entities
		&entity.Coupon{},
		&entity.Tax{},
		&entity.RevenueCommission{},
		&entity.CommissionSlot{},

		// Transaction entities
		&entity.Appointment{},
		&entity.AppointmentService{},
		&entity.AppointmentProduct{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.Payment{},

		// Earning entities
		&entity.StaffEarning{},
		&entity.StaffPayment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
