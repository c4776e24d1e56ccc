package service

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/logger"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// BookingService handles the appointment lifecycle: pricing service lines
// against packages and the catalog, pricing product lines, and handing
// product lines to the order pipeline for stock deduction and invoicing.
type BookingService struct {
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	packageRepo     repository.CustomerPackageRepository
	customerRepo    repository.CustomerRepository
	branchRepo      repository.BranchRepository
	orders          *OrderService
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	packageRepo repository.CustomerPackageRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	orders *OrderService,
) *BookingService {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		packageRepo:     packageRepo,
		customerRepo:    customerRepo,
		branchRepo:      branchRepo,
		orders:          orders,
	}
}

// ServiceLineInput represents a requested service line
type ServiceLineInput struct {
	ServiceID uuid.UUID
	StaffID   uuid.UUID
}

// CreateAppointmentInput represents the create appointment input
type CreateAppointmentInput struct {
	CustomerID      uuid.UUID
	BranchID        uuid.UUID
	AppointmentDate time.Time
	AppointmentTime string
	Notes           string
	Status          enum.AppointmentStatus
	PaymentMethod   enum.PaymentMethod
	Services        []ServiceLineInput
	Products        []OrderLineInput
}

// UpdateAppointmentInput carries the mutable appointment fields. Nil slices
// leave the existing lines untouched; supplied slices are fully re-priced.
type UpdateAppointmentInput struct {
	AppointmentDate *time.Time
	AppointmentTime *string
	Notes           *string
	Services        []ServiceLineInput
	Products        []OrderLineInput
}

// CreateAppointment prices every requested line, consumes package
// entitlements, persists the appointment and hands product lines to the
// order pipeline.
func (s *BookingService) CreateAppointment(ctx context.Context, input *CreateAppointmentInput) (*entity.Appointment, error) {
	salonID, ok := infraRepo.GetSalonID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Salon context required")
	}

	if len(input.Services) == 0 && len(input.Products) == 0 {
		return nil, apperror.NewBadRequestError("At least one service or product line is required")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	status := input.Status
	if status == "" {
		status = enum.AppointmentUpcoming
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid appointment status")
	}

	serviceLines, consumed, err := s.priceServiceLines(ctx, input.CustomerID, input.Services)
	if err != nil {
		return nil, err
	}

	var productLines []entity.AppointmentProduct
	var resolvedProducts []ResolvedLine
	if len(input.Products) > 0 {
		resolvedProducts, err = s.orders.ResolveLines(ctx, input.Products)
		if err != nil {
			s.restoreEntitlements(ctx, consumed)
			return nil, err
		}
		for _, line := range resolvedProducts {
			productLines = append(productLines, entity.AppointmentProduct{
				ProductID:  line.ProductID,
				VariantID:  line.VariantID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			})
		}
	}

	appointment := &entity.Appointment{
		SalonID:         salonID,
		CustomerID:      input.CustomerID,
		BranchID:        input.BranchID,
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		Notes:           input.Notes,
		Status:          status,
		PaymentStatus:   enum.PaymentPending,
		Services:        serviceLines,
		Products:        productLines,
	}
	appointment.ServiceTotal = appointment.ServiceAmountSum()
	appointment.ProductTotal = appointment.ProductTotalSum()
	appointment.TotalPayment = appointment.ServiceTotal + appointment.ProductTotal

	for attempt := 0; ; attempt++ {
		appointment.OrderCode = generateOrderCode()
		err = s.appointmentRepo.Create(ctx, appointment)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < 2 {
			continue
		}
		s.restoreEntitlements(ctx, consumed)
		return nil, apperror.NewInternalError(err)
	}

	if len(input.Products) > 0 {
		method := input.PaymentMethod
		if method == "" {
			method = enum.MethodCash
		}
		if _, err := s.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:      input.BranchID,
			CustomerID:    input.CustomerID,
			PaymentMethod: method,
			Lines:         input.Products,
		}); err != nil {
			if delErr := s.appointmentRepo.Delete(ctx, appointment.ID); delErr != nil {
				logger.L.WithError(delErr).WithField("appointment_id", appointment.ID).
					Error("failed to unwind appointment after order failure")
			}
			s.restoreEntitlements(ctx, consumed)
			return nil, err
		}
	}

	return s.appointmentRepo.GetWithDetails(ctx, appointment.ID)
}

// priceServiceLines resolves each requested service line: a matching package
// entitlement covers the line at zero cost, otherwise the catalog's regular
// price applies. Consumed entitlement item ids are returned for unwinding.
func (s *BookingService) priceServiceLines(ctx context.Context, customerID uuid.UUID, inputs []ServiceLineInput) ([]entity.AppointmentService, []uuid.UUID, error) {
	now := time.Now()
	lines := make([]entity.AppointmentService, 0, len(inputs))
	var consumed []uuid.UUID

	for _, in := range inputs {
		item, err := s.packageRepo.FindEntitlement(ctx, customerID, in.ServiceID, now)
		if err != nil {
			s.restoreEntitlements(ctx, consumed)
			return nil, nil, err
		}

		if item != nil {
			ok, err := s.packageRepo.ConsumeEntitlement(ctx, item.ID)
			if err != nil {
				s.restoreEntitlements(ctx, consumed)
				return nil, nil, err
			}
			if ok {
				consumed = append(consumed, item.ID)
				pkgID := item.PackageID
				lines = append(lines, entity.AppointmentService{
					ServiceID:   in.ServiceID,
					StaffID:     in.StaffID,
					Amount:      0,
					UsedPackage: true,
					PackageID:   &pkgID,
				})
				continue
			}
			// Lost the race for the last unit; fall through to catalog pricing.
		}

		svc, err := s.serviceRepo.GetByID(ctx, in.ServiceID)
		if err != nil {
			s.restoreEntitlements(ctx, consumed)
			return nil, nil, err
		}
		if svc == nil {
			s.restoreEntitlements(ctx, consumed)
			return nil, nil, apperror.NewNotFoundError("Service")
		}

		lines = append(lines, entity.AppointmentService{
			ServiceID: in.ServiceID,
			StaffID:   in.StaffID,
			Amount:    svc.RegularPrice,
		})
	}
	return lines, consumed, nil
}

func (s *BookingService) restoreEntitlements(ctx context.Context, itemIDs []uuid.UUID) {
	for _, id := range itemIDs {
		if err := s.packageRepo.RestoreEntitlement(ctx, id); err != nil {
			logger.L.WithError(err).WithField("package_item_id", id).
				Error("failed to restore package entitlement")
		}
	}
}

// UpdateAppointment re-prices any supplied service/product arrays and merges
// the scalar fields. Omitted fields are left untouched.
func (s *BookingService) UpdateAppointment(ctx context.Context, id uuid.UUID, input *UpdateAppointmentInput) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	if input.AppointmentDate != nil {
		appointment.AppointmentDate = *input.AppointmentDate
	}
	if input.AppointmentTime != nil {
		appointment.AppointmentTime = *input.AppointmentTime
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if input.Services != nil {
		lines, consumed, err := s.priceServiceLines(ctx, appointment.CustomerID, input.Services)
		if err != nil {
			return nil, err
		}
		if err := s.appointmentRepo.ReplaceServiceLines(ctx, appointment.ID, lines); err != nil {
			s.restoreEntitlements(ctx, consumed)
			return nil, apperror.NewInternalError(err)
		}
		appointment.Services = lines
	}

	if input.Products != nil {
		resolved, err := s.orders.ResolveLines(ctx, input.Products)
		if err != nil {
			return nil, err
		}
		lines := make([]entity.AppointmentProduct, 0, len(resolved))
		for _, line := range resolved {
			lines = append(lines, entity.AppointmentProduct{
				ProductID:  line.ProductID,
				VariantID:  line.VariantID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			})
		}
		if err := s.appointmentRepo.ReplaceProductLines(ctx, appointment.ID, lines); err != nil {
			return nil, apperror.NewInternalError(err)
		}
		appointment.Products = lines
	}

	appointment.ServiceTotal = appointment.ServiceAmountSum()
	appointment.ProductTotal = appointment.ProductTotalSum()
	appointment.TotalPayment = appointment.ServiceTotal + appointment.ProductTotal

	// Save scalar fields only; line collections were already replaced.
	saved := *appointment
	saved.Services = nil
	saved.Products = nil
	if err := s.appointmentRepo.Update(ctx, &saved); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return s.appointmentRepo.GetWithDetails(ctx, appointment.ID)
}

// PatchStatus assigns status and/or payment status directly, without
// re-pricing. At least one of the two fields is required.
func (s *BookingService) PatchStatus(ctx context.Context, id uuid.UUID, status *enum.AppointmentStatus, paymentStatus *enum.PaymentStatus) (*entity.Appointment, error) {
	if status == nil && paymentStatus == nil {
		return nil, apperror.NewBadRequestError("Either status or payment_status is required")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	if status != nil {
		if !status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid appointment status")
		}
		if err := s.appointmentRepo.UpdateStatus(ctx, id, *status); err != nil {
			return nil, apperror.NewInternalError(err)
		}
	}
	if paymentStatus != nil {
		if !paymentStatus.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid payment status")
		}
		if err := s.appointmentRepo.UpdatePaymentStatus(ctx, id, *paymentStatus); err != nil {
			return nil, apperror.NewInternalError(err)
		}
	}

	return s.appointmentRepo.GetWithDetails(ctx, id)
}

// DeleteAppointment removes an appointment
func (s *BookingService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}
	return s.appointmentRepo.Delete(ctx, id)
}

// GetAppointment retrieves an appointment with its full detail graph
func (s *BookingService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// ListAppointments lists appointments with filtering
func (s *BookingService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// ListUpcoming lists future appointments still in the upcoming state
func (s *BookingService) ListUpcoming(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	now := time.Now()
	return s.ListAppointments(ctx, &repository.AppointmentFilterParams{
		Pagination:    params,
		UpcomingAfter: &now,
	})
}

// OrderReport lists appointments that carry product lines
func (s *BookingService) OrderReport(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	return s.ListAppointments(ctx, &repository.AppointmentFilterParams{
		Pagination:   params,
		WithProducts: true,
	})
}
