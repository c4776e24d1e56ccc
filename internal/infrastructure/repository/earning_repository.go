package repository

import (
	"context"
	"errors"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type staffEarningRepository struct {
	db *gorm.DB
}

// NewStaffEarningRepository creates a new staff earning cache repository
func NewStaffEarningRepository(db *gorm.DB) domainRepo.StaffEarningRepository {
	return &staffEarningRepository{db: db}
}

func (r *staffEarningRepository) Upsert(ctx context.Context, earning *entity.StaffEarning) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "salon_id"}, {Name: "staff_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_booking", "service_amount", "commission_earning",
			"tip_earning", "staff_earning", "updated_at", "deleted_at",
		}),
	}).Create(earning).Error
}

func (r *staffEarningRepository) GetByStaffID(ctx context.Context, staffID uuid.UUID) (*entity.StaffEarning, error) {
	var earning entity.StaffEarning
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&earning, "staff_id = ?", staffID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &earning, err
}

func (r *staffEarningRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.StaffEarning, int64, error) {
	var earnings []entity.StaffEarning
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StaffEarning{}).Scopes(SalonScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Staff").
		Order("updated_at DESC").
		Find(&earnings).Error

	return earnings, total, err
}

func (r *staffEarningRepository) DeleteByStaffID(ctx context.Context, staffID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Unscoped().
		Delete(&entity.StaffEarning{}, "staff_id = ?", staffID).Error
}

type staffPaymentRepository struct {
	db *gorm.DB
}

// NewStaffPaymentRepository creates a new payout ledger repository
func NewStaffPaymentRepository(db *gorm.DB) domainRepo.StaffPaymentRepository {
	return &staffPaymentRepository{db: db}
}

// CreateWithClaim flips paid on the computed lines and inserts the payout
// record in one transaction. A claimed-row count below the requested set
// means a concurrent payout already took some lines; the transaction rolls
// back so no line is left paid without a matching ledger entry.
func (r *staffPaymentRepository) CreateWithClaim(ctx context.Context, payment *entity.StaffPayment, lineIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.AppointmentService{}).
			Where("id IN ?", lineIDs).
			Where("paid = ?", false).
			Update("paid", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(lineIDs)) {
			return domainRepo.ErrPayoutConflict
		}
		return tx.Create(payment).Error
	})
}

func (r *staffPaymentRepository) ListByStaffID(ctx context.Context, staffID uuid.UUID, params *pagination.PaginationParams) ([]entity.StaffPayment, int64, error) {
	var payments []entity.StaffPayment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StaffPayment{}).
		Scopes(SalonScope(ctx)).
		Where("staff_id = ?", staffID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("paid_at DESC").
		Find(&payments).Error

	return payments, total, err
}
