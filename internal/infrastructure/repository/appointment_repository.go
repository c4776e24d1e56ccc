package repository

import (
	"context"
	"errors"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Services").
		Preload("Products").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Customer").
		Preload("Branch").
		Preload("Services.Service").
		Preload("Services.Staff").
		Preload("Products.Product").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: false}).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(SalonScope(ctx))

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.Date != nil {
		query = query.Where("appointment_date = ?", *params.Date)
	}

	if params.StartDate != nil {
		query = query.Where("appointment_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("appointment_date <= ?", *params.EndDate)
	}

	if params.UpcomingAfter != nil {
		query = query.Where("appointment_date >= ?", *params.UpcomingAfter).
			Where("status = ?", enum.AppointmentUpcoming)
	}

	if params.WithProducts {
		query = query.Where("EXISTS (SELECT 1 FROM appointment_products"+
			" WHERE appointment_products.appointment_id = appointments.id"+
			" AND appointment_products.deleted_at IS NULL)")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Services.Service").
		Preload("Services.Staff").
		Preload("Products.Product").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error

	return appointments, total, err
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Scopes(SalonScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Scopes(SalonScope(ctx)).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *appointmentRepository) ReplaceServiceLines(ctx context.Context, appointmentID uuid.UUID, lines []entity.AppointmentService) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Delete(&entity.AppointmentService{}, "appointment_id = ?", appointmentID).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].AppointmentID = appointmentID
		}
		return tx.Create(&lines).Error
	})
}

func (r *appointmentRepository) ReplaceProductLines(ctx context.Context, appointmentID uuid.UUID, lines []entity.AppointmentProduct) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Delete(&entity.AppointmentProduct{}, "appointment_id = ?", appointmentID).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].AppointmentID = appointmentID
		}
		return tx.Create(&lines).Error
	})
}

func (r *appointmentRepository) ListWithServiceLines(ctx context.Context, status enum.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Services").
		Where("status = ?", status).
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) ListUnpaidServiceLines(ctx context.Context, staffID uuid.UUID) ([]entity.AppointmentService, error) {
	salonID, ok := GetSalonID(ctx)
	if !ok {
		return nil, nil
	}

	var lines []entity.AppointmentService
	err := r.db.WithContext(ctx).
		Joins("JOIN appointments ON appointments.id = appointment_services.appointment_id").
		Where("appointments.salon_id = ?", salonID).
		Where("appointments.status = ?", enum.AppointmentCheckOut).
		Where("appointments.deleted_at IS NULL").
		Where("appointment_services.staff_id = ?", staffID).
		Where("appointment_services.paid = ?", false).
		Find(&lines).Error
	return lines, err
}

func (r *appointmentRepository) UpdateServiceLineCommission(ctx context.Context, lineID uuid.UUID, commissionCents int64) error {
	return r.db.WithContext(ctx).Model(&entity.AppointmentService{}).
		Where("id = ?", lineID).
		Update("commission_earned", commissionCents).Error
}
