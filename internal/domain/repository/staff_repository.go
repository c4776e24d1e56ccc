package repository

import (
	"context"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error)
	// ListAll returns every staff member of the salon, for aggregation passes.
	ListAll(ctx context.Context) ([]entity.Staff, error)
}

// RevenueCommissionRepository defines the interface for commission plan operations
type RevenueCommissionRepository interface {
	Create(ctx context.Context, commission *entity.RevenueCommission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RevenueCommission, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.RevenueCommission, error)
	Update(ctx context.Context, commission *entity.RevenueCommission) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RevenueCommission, int64, error)
}
