package repository

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/google/uuid"
)

// CustomerPackageRepository defines the interface for prepaid package operations
type CustomerPackageRepository interface {
	Create(ctx context.Context, pkg *entity.CustomerPackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerPackage, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CustomerPackage, error)
	// FindEntitlement locates an active package of the customer containing the
	// service with remaining quantity. Returns nil when no entitlement exists.
	FindEntitlement(ctx context.Context, customerID, serviceID uuid.UUID, at time.Time) (*entity.CustomerPackageItem, error)
	// ConsumeEntitlement atomically decrements the item's remaining quantity.
	// Returns false when the quantity already reached zero, so concurrent
	// bookings can never overdraw a package.
	ConsumeEntitlement(ctx context.Context, itemID uuid.UUID) (bool, error)
	// RestoreEntitlement increments the item's remaining quantity (cancellation).
	RestoreEntitlement(ctx context.Context, itemID uuid.UUID) error
}
