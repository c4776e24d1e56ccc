package service

import (
	"context"
	"errors"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarningService aggregates staff earnings from checked-out appointments:
// commission via the staff's tiered commission rule and an equal split of
// each settled appointment's tips across its distinct staff.
type EarningService struct {
	appointmentRepo  repository.AppointmentRepository
	paymentRepo      repository.PaymentRepository
	staffRepo        repository.StaffRepository
	commissionRepo   repository.RevenueCommissionRepository
	earningRepo      repository.StaffEarningRepository
	staffPaymentRepo repository.StaffPaymentRepository
}

// NewEarningService creates a new earning service
func NewEarningService(
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	staffRepo repository.StaffRepository,
	commissionRepo repository.RevenueCommissionRepository,
	earningRepo repository.StaffEarningRepository,
	staffPaymentRepo repository.StaffPaymentRepository,
) *EarningService {
	return &EarningService{
		appointmentRepo:  appointmentRepo,
		paymentRepo:      paymentRepo,
		staffRepo:        staffRepo,
		commissionRepo:   commissionRepo,
		earningRepo:      earningRepo,
		staffPaymentRepo: staffPaymentRepo,
	}
}

// PayoutInput represents the staff payout input
type PayoutInput struct {
	PaymentMethod enum.PaymentMethod
	Description   string
}

// tipShare splits an appointment's tips equally across its distinct staff,
// rounded to the cent.
func tipShare(tipsCents int64, staffCount int) int64 {
	if tipsCents <= 0 || staffCount == 0 {
		return 0
	}
	return decimal.NewFromInt(tipsCents).
		Div(decimal.NewFromInt(int64(staffCount))).
		Round(0).
		IntPart()
}

// computeForStaff derives the staff member's unpaid earnings from the
// current unpaid service lines of checked-out appointments. It returns the
// aggregate and the ids of the lines it was derived from.
func (s *EarningService) computeForStaff(ctx context.Context, staff *entity.Staff) (*entity.StaffEarning, []uuid.UUID, error) {
	lines, err := s.appointmentRepo.ListUnpaidServiceLines(ctx, staff.ID)
	if err != nil {
		return nil, nil, err
	}

	earning := &entity.StaffEarning{
		SalonID: staff.SalonID,
		StaffID: staff.ID,
	}

	var rule *entity.RevenueCommission
	if staff.CommissionID != nil {
		rule, err = s.commissionRepo.GetByID(ctx, *staff.CommissionID)
		if err != nil {
			return nil, nil, err
		}
	}

	lineIDs := make([]uuid.UUID, 0, len(lines))
	seenAppointments := make(map[uuid.UUID]struct{})
	for _, line := range lines {
		lineIDs = append(lineIDs, line.ID)
		earning.TotalBooking++
		earning.ServiceAmount += line.Amount

		if rule != nil {
			commission := rule.CommissionForCents(line.Amount)
			earning.CommissionEarning += commission
			if err := s.appointmentRepo.UpdateServiceLineCommission(ctx, line.ID, commission); err != nil {
				logger.L.WithError(err).WithField("line_id", line.ID).
					Warn("failed to record line commission")
			}
		}

		if _, seen := seenAppointments[line.AppointmentID]; seen {
			continue
		}
		seenAppointments[line.AppointmentID] = struct{}{}

		appointment, err := s.appointmentRepo.GetByID(ctx, line.AppointmentID)
		if err != nil {
			return nil, nil, err
		}
		if appointment == nil {
			continue
		}
		payment, err := s.paymentRepo.GetByAppointmentID(ctx, line.AppointmentID)
		if err != nil {
			return nil, nil, err
		}
		if payment != nil {
			earning.TipEarning += tipShare(payment.Tips, len(appointment.DistinctStaffIDs()))
		}
	}

	earning.StaffEarning = earning.CommissionEarning + earning.TipEarning
	return earning, lineIDs, nil
}

// RecomputeAll rebuilds the earning aggregate of every staff member in the
// salon from current unpaid lines. Idempotent: running it twice yields the
// same aggregates.
func (s *EarningService) RecomputeAll(ctx context.Context) ([]entity.StaffEarning, error) {
	if _, ok := infraRepo.GetSalonID(ctx); !ok {
		return nil, apperror.NewBadRequestError("Salon context required")
	}

	staffList, err := s.staffRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	earnings := make([]entity.StaffEarning, 0, len(staffList))
	for i := range staffList {
		earning, _, err := s.computeForStaff(ctx, &staffList[i])
		if err != nil {
			return nil, err
		}
		if err := s.earningRepo.Upsert(ctx, earning); err != nil {
			return nil, apperror.NewInternalError(err)
		}
		earnings = append(earnings, *earning)
	}
	return earnings, nil
}

// GetStaffEarning returns the unpaid-only earning view for one staff member
func (s *EarningService) GetStaffEarning(ctx context.Context, staffID uuid.UUID) (*entity.StaffEarning, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}

	earning, _, err := s.computeForStaff(ctx, staff)
	return earning, err
}

// Payout settles a staff member's unpaid earnings: it atomically claims the
// unpaid lines, records the payout and drops the cached aggregate. A
// concurrent payout for the same staff loses the claim and gets a conflict.
func (s *EarningService) Payout(ctx context.Context, staffID uuid.UUID, input *PayoutInput) (*entity.StaffPayment, error) {
	if !input.PaymentMethod.IsValidPayoutMethod() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}

	earning, lineIDs, err := s.computeForStaff(ctx, staff)
	if err != nil {
		return nil, err
	}
	if len(lineIDs) == 0 {
		return nil, apperror.NewBadRequestError("No unpaid earnings for this staff member")
	}

	payment := &entity.StaffPayment{
		SalonID:          staff.SalonID,
		StaffID:          staff.ID,
		TotalPaid:        earning.StaffEarning,
		PaymentMethod:    input.PaymentMethod,
		Description:      input.Description,
		Tips:             earning.TipEarning,
		CommissionAmount: earning.CommissionEarning,
	}
	if err := s.staffPaymentRepo.CreateWithClaim(ctx, payment, lineIDs); err != nil {
		if errors.Is(err, repository.ErrPayoutConflict) {
			return nil, apperror.NewConflictError("Another payout for this staff member is in progress")
		}
		return nil, apperror.NewInternalError(err)
	}

	// The aggregate is a cache; the payout record supersedes it.
	if err := s.earningRepo.DeleteByStaffID(ctx, staff.ID); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return payment, nil
}

// DeleteEarning drops the cached aggregate for a staff member
func (s *EarningService) DeleteEarning(ctx context.Context, staffID uuid.UUID) error {
	earning, err := s.earningRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		return err
	}
	if earning == nil {
		return apperror.NewNotFoundError("Staff earning")
	}
	return s.earningRepo.DeleteByStaffID(ctx, staffID)
}
