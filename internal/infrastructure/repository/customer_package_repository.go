package repository

import (
	"context"
	"errors"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerPackageRepository struct {
	db *gorm.DB
}

// NewCustomerPackageRepository creates a new customer package repository
func NewCustomerPackageRepository(db *gorm.DB) domainRepo.CustomerPackageRepository {
	return &customerPackageRepository{db: db}
}

func (r *customerPackageRepository) Create(ctx context.Context, pkg *entity.CustomerPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *customerPackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerPackage, error) {
	var pkg entity.CustomerPackage
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Items").
		First(&pkg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pkg, err
}

func (r *customerPackageRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CustomerPackage, error) {
	var pkgs []entity.CustomerPackage
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *customerPackageRepository) FindEntitlement(ctx context.Context, customerID, serviceID uuid.UUID, at time.Time) (*entity.CustomerPackageItem, error) {
	salonID, ok := GetSalonID(ctx)
	if !ok {
		return nil, nil
	}

	var item entity.CustomerPackageItem
	err := r.db.WithContext(ctx).
		Joins("JOIN customer_packages ON customer_packages.id = customer_package_items.package_id").
		Where("customer_packages.salon_id = ?", salonID).
		Where("customer_packages.customer_id = ?", customerID).
		Where("customer_packages.start_date <= ? AND customer_packages.end_date >= ?", at, at).
		Where("customer_packages.deleted_at IS NULL").
		Where("customer_package_items.service_id = ?", serviceID).
		Where("customer_package_items.quantity > 0").
		Order("customer_packages.end_date ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ConsumeEntitlement decrements the remaining quantity only while it is
// positive; a zero row count means the entitlement was already exhausted.
func (r *customerPackageRepository) ConsumeEntitlement(ctx context.Context, itemID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.CustomerPackageItem{}).
		Where("id = ? AND quantity > 0", itemID).
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *customerPackageRepository) RestoreEntitlement(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.CustomerPackageItem{}).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + 1")).Error
}
