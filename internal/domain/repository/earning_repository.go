package repository

import (
	"context"
	"errors"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// ErrPayoutConflict is returned when a payout cannot claim every service
// line it was computed from, because a concurrent payout got there first.
var ErrPayoutConflict = errors.New("payout lines already claimed")

// StaffEarningRepository defines the interface for the unpaid-earning cache
type StaffEarningRepository interface {
	// Upsert replaces the aggregate row keyed by (salon, staff).
	Upsert(ctx context.Context, earning *entity.StaffEarning) error
	GetByStaffID(ctx context.Context, staffID uuid.UUID) (*entity.StaffEarning, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.StaffEarning, int64, error)
	// DeleteByStaffID drops the cached aggregate after a payout so the next
	// read recomputes from unpaid lines.
	DeleteByStaffID(ctx context.Context, staffID uuid.UUID) error
}

// StaffPaymentRepository defines the interface for the payout ledger
type StaffPaymentRepository interface {
	// CreateWithClaim marks the given unpaid service lines as paid and
	// records the payout in one transaction. If any line was already
	// claimed, nothing is written and ErrPayoutConflict is returned.
	CreateWithClaim(ctx context.Context, payment *entity.StaffPayment, lineIDs []uuid.UUID) error
	ListByStaffID(ctx context.Context, staffID uuid.UUID, params *pagination.PaginationParams) ([]entity.StaffPayment, int64, error)
}
