package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/google/uuid"
)

// SalonMiddleware resolves the tenant from the salon_id query parameter,
// validates it against the salons table and stores it in both the Gin
// context and the request context for repository scoping.
func SalonMiddleware(salonRepo repository.SalonRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		salonIDStr := c.Query("salon_id")
		if salonIDStr == "" {
			response.BadRequest(c, "salon_id query parameter is required")
			c.Abort()
			return
		}

		salonID, err := uuid.Parse(salonIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid salon_id")
			c.Abort()
			return
		}

		salon, err := salonRepo.GetByID(c.Request.Context(), salonID)
		if err != nil || salon == nil {
			response.NotFound(c, "Salon not found")
			c.Abort()
			return
		}

		c.Set("salon_id", salon.ID)

		ctx := infraRepo.WithSalon(c.Request.Context(), salon.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSalonID retrieves the salon ID from gin context
func GetSalonID(c *gin.Context) uuid.UUID {
	salonID, exists := c.Get("salon_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := salonID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
