package repository

import (
	"context"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// SalonRepository defines the interface for tenant data operations
type SalonRepository interface {
	Create(ctx context.Context, salon *entity.Salon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Salon, error)
	Update(ctx context.Context, salon *entity.Salon) error
}

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Branch, int64, error)
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

// CouponRepository defines the interface for coupon data operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Coupon, int64, error)
}

// TaxRepository defines the interface for tax rate operations
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	Update(ctx context.Context, tax *entity.Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error)
}
