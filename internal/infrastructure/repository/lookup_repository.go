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

type salonRepository struct {
	db *gorm.DB
}

// NewSalonRepository creates a new salon repository
func NewSalonRepository(db *gorm.DB) domainRepo.SalonRepository {
	return &salonRepository{db: db}
}

func (r *salonRepository) Create(ctx context.Context, salon *entity.Salon) error {
	return r.db.WithContext(ctx).Create(salon).Error
}

func (r *salonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	var salon entity.Salon
	err := r.db.WithContext(ctx).First(&salon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &salon, err
}

func (r *salonRepository) Update(ctx context.Context, salon *entity.Salon) error {
	return r.db.WithContext(ctx).Save(salon).Error
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Branch, int64, error) {
	var branches []entity.Branch
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Branch{}).Scopes(SalonScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at ASC").
		Find(&branches).Error

	return branches, total, err
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(SalonScope(ctx))

	if search != "" {
		query = query.Where("full_name LIKE ? OR phone_number LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *gorm.DB) domainRepo.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&coupon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &coupon, err
}

func (r *couponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Coupon{}, "id = ?", id).Error
}

func (r *couponRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Coupon, int64, error) {
	var coupons []entity.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Coupon{}).Scopes(SalonScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&coupons).Error

	return coupons, total, err
}

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) Update(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

func (r *taxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Tax{}, "id = ?", id).Error
}

func (r *taxRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error) {
	var taxes []entity.Tax
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Tax{}).Scopes(SalonScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&taxes).Error

	return taxes, total, err
}
