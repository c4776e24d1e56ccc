package repository

import (
	"context"
	"errors"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Staff, error) {
	var staff []entity.Staff
	if len(ids) == 0 {
		return staff, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Where("id IN ?", ids).
		Find(&staff).Error
	return staff, err
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Staff{}, "id = ?", id).Error
}

func (r *staffRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error) {
	var staff []entity.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Staff{}).Scopes(SalonScope(ctx))

	if search != "" {
		query = query.Where("full_name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&staff).Error

	return staff, total, err
}

func (r *staffRepository) ListAll(ctx context.Context) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Find(&staff).Error
	return staff, err
}

type revenueCommissionRepository struct {
	db *gorm.DB
}

// NewRevenueCommissionRepository creates a new commission plan repository
func NewRevenueCommissionRepository(db *gorm.DB) domainRepo.RevenueCommissionRepository {
	return &revenueCommissionRepository{db: db}
}

func (r *revenueCommissionRepository) Create(ctx context.Context, commission *entity.RevenueCommission) error {
	return r.db.WithContext(ctx).Create(commission).Error
}

func (r *revenueCommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RevenueCommission, error) {
	var commission entity.RevenueCommission
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Slots").
		First(&commission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &commission, err
}

func (r *revenueCommissionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.RevenueCommission, error) {
	var commissions []entity.RevenueCommission
	if len(ids) == 0 {
		return commissions, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Slots").
		Where("id IN ?", ids).
		Find(&commissions).Error
	return commissions, err
}

func (r *revenueCommissionRepository) Update(ctx context.Context, commission *entity.RevenueCommission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Delete(&entity.CommissionSlot{}, "commission_id = ?", commission.ID).Error; err != nil {
			return err
		}
		return tx.Save(commission).Error
	})
}

func (r *revenueCommissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.RevenueCommission{}, "id = ?", id).Error
}

func (r *revenueCommissionRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RevenueCommission, int64, error) {
	var commissions []entity.RevenueCommission
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RevenueCommission{}).Scopes(SalonScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Slots").
		Order("created_at DESC").
		Find(&commissions).Error

	return commissions, total, err
}
