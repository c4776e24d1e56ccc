package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/config"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/handler"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Appointment  *handler.AppointmentHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	StaffEarning *handler.StaffEarningHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	SalonRepo       domainRepo.SalonRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Rendered invoices
	router.Static(deps.Cfg.Storage.BaseURL, deps.Cfg.Storage.UploadsDir)

	// API routes, scoped to a salon
	api := router.Group("/api")
	api.Use(middleware.SalonMiddleware(deps.SalonRepo))

	limiterCfg := middleware.DefaultRateLimiterConfig()
	if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
		limiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
		limiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewSalonRateLimiter(limiterCfg)
	api.Use(rateLimiter.Middleware())
	api.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

	registerAppointmentRoutes(api, h)
	registerOrderRoutes(api, h)
	registerPaymentRoutes(api, h)
	registerStaffEarningRoutes(api, h)

	return router
}

func registerAppointmentRoutes(api *gin.RouterGroup, h *Handlers) {
	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.Appointment.Create)
		appointments.GET("", h.Appointment.List)
		appointments.GET("/upcoming", h.Appointment.ListUpcoming)
		appointments.GET("/order-report", h.Appointment.OrderReport)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PUT("/:id", h.Appointment.Update)
		appointments.PATCH("/:id", h.Appointment.PatchStatus)
		appointments.DELETE("/:id", h.Appointment.Delete)
	}
}

func registerOrderRoutes(api *gin.RouterGroup, h *Handlers) {
	orders := api.Group("/order")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerPaymentRoutes(api *gin.RouterGroup, h *Handlers) {
	payments := api.Group("/payments")
	{
		payments.POST("", h.Payment.Settle)
		payments.GET("", h.Payment.List)
		payments.GET("/invoice", h.Payment.Invoice)
		payments.GET("/:id", h.Payment.Get)
	}
}

func registerStaffEarningRoutes(api *gin.RouterGroup, h *Handlers) {
	earnings := api.Group("/staffEarnings")
	{
		earnings.GET("", h.StaffEarning.List)
		earnings.GET("/:id", h.StaffEarning.Get)
		earnings.POST("/pay/:staff_id", h.StaffEarning.Pay)
		earnings.DELETE("/:id", h.StaffEarning.Delete)
	}
}
