package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/infrastructure/database"
	"github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/handler"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/routes"
	"github.com/glowdesk/glowdesk-api/pkg/invoice"
	"github.com/glowdesk/glowdesk-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logger.Init(cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	salonRepo := repository.NewSalonRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	commissionRepo := repository.NewRevenueCommissionRepository(db)
	packageRepo := repository.NewCustomerPackageRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	earningRepo := repository.NewStaffEarningRepository(db)
	staffPaymentRepo := repository.NewStaffPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize invoice rendering
	store, err := invoice.NewFileStore(cfg.Storage.UploadsDir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatalf("Failed to prepare uploads directory: %v", err)
	}
	renderer := invoice.NewPDFRenderer(cfg.Invoice.CurrencySymbol)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, salonRepo, branchRepo, renderer, store)
	bookingService := service.NewBookingService(appointmentRepo, serviceRepo, packageRepo, customerRepo, branchRepo, orderService)
	settlementService := service.NewSettlementService(paymentRepo, appointmentRepo, couponRepo, taxRepo, customerRepo, salonRepo, branchRepo, renderer, store)
	earningService := service.NewEarningService(appointmentRepo, paymentRepo, staffRepo, commissionRepo, earningRepo, staffPaymentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Appointment:  handler.NewAppointmentHandler(bookingService),
		Order:        handler.NewOrderHandler(orderService),
		Payment:      handler.NewPaymentHandler(settlementService),
		StaffEarning: handler.NewStaffEarningHandler(earningService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		SalonRepo:       salonRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Sweep expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.L.WithError(err).Warn("idempotency key cleanup failed")
			}
		}
	}()

	logger.L.Infof("%s listening on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
