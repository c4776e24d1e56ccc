package repository

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// GetWithDetails loads the appointment together with its service and
	// product lines, customer and staff associations.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
	// ReplaceServiceLines swaps the full set of service lines on reschedule.
	ReplaceServiceLines(ctx context.Context, appointmentID uuid.UUID, lines []entity.AppointmentService) error
	// ReplaceProductLines swaps the full set of product lines on reschedule.
	ReplaceProductLines(ctx context.Context, appointmentID uuid.UUID, lines []entity.AppointmentProduct) error
	// ListWithServiceLines returns the salon's appointments in the given
	// status with their service lines preloaded.
	ListWithServiceLines(ctx context.Context, status enum.AppointmentStatus) ([]entity.Appointment, error)
	// ListUnpaidServiceLines returns unpaid service lines of checked-out
	// appointments for a staff member.
	ListUnpaidServiceLines(ctx context.Context, staffID uuid.UUID) ([]entity.AppointmentService, error)
	// UpdateServiceLineCommission records the computed commission on a line.
	UpdateServiceLineCommission(ctx context.Context, lineID uuid.UUID, commissionCents int64) error
}

// AppointmentFilterParams contains filtering parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination    *pagination.PaginationParams
	CustomerID    *uuid.UUID
	BranchID      *uuid.UUID
	Status        *enum.AppointmentStatus
	PaymentStatus *enum.PaymentStatus
	Date          *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	UpcomingAfter *time.Time
	// WithProducts restricts the listing to appointments carrying product lines.
	WithProducts bool
}
