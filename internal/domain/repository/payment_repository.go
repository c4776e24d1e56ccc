package repository

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for settlement record operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}
