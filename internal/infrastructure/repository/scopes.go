package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// SalonIDKey is the context key for the salon (tenant) ID
const SalonIDKey ctxKey = "salon_id"

// SalonScope returns a GORM scope that filters by salon.
// This should be applied to all queries for salon-scoped entities.
func SalonScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		salonID, ok := ctx.Value(SalonIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if salon context missing
			// This prevents accidental cross-tenant data access
			return db.Where("1 = 0")
		}
		return db.Where("salon_id = ?", salonID)
	}
}

// WithSalon adds salon ID to context
func WithSalon(ctx context.Context, salonID uuid.UUID) context.Context {
	return context.WithValue(ctx, SalonIDKey, salonID)
}

// GetSalonID extracts salon ID from context
func GetSalonID(ctx context.Context) (uuid.UUID, bool) {
	salonID, ok := ctx.Value(SalonIDKey).(uuid.UUID)
	return salonID, ok
}
