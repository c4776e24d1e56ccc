package repository

import (
	"context"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and salon ID
	GetByKey(ctx context.Context, key string, salonID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
