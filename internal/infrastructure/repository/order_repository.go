package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithStockDeduction persists the order and decrements stock for every
// line in one transaction. Stock checks are conditional UPDATEs, so two
// concurrent orders for the last unit cannot both succeed.
func (r *orderRepository) CreateWithStockDeduction(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range order.Lines {
			if err := deductStock(tx, line.ProductID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	})
}

func deductStock(tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	var result *gorm.DB
	if variantID != nil {
		result = tx.Model(&entity.ProductVariant{}).
			Where("id = ? AND product_id = ? AND stock >= ?", *variantID, productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
	} else {
		result = tx.Model(&entity.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", domainRepo.ErrInsufficientStock, productID)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Customer").
		Preload("Lines.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderCode(ctx context.Context, code string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(SalonScope(ctx)).
		Preload("Customer").
		Preload("Lines.Product").
		First(&order, "order_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func restoreStock(tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	if variantID != nil {
		return tx.Model(&entity.ProductVariant{}).
			Where("id = ?", *variantID).
			Update("stock", gorm.Expr("stock + ?", quantity)).Error
	}
	return tx.Model(&entity.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) ReplaceLinesWithStockAdjustment(ctx context.Context, order *entity.Order, oldLines, newLines []entity.OrderLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range oldLines {
			if err := restoreStock(tx, line.ProductID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}
		for _, line := range newLines {
			if err := deductStock(tx, line.ProductID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Unscoped().
			Delete(&entity.OrderLine{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		for i := range newLines {
			newLines[i].OrderID = order.ID
		}
		if len(newLines) > 0 {
			if err := tx.Create(&newLines).Error; err != nil {
				return err
			}
		}
		order.Lines = nil
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		order.Lines = newLines
		return nil
	})
}

func (r *orderRepository) DeleteWithStockRestore(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range order.Lines {
			if err := restoreStock(tx, line.ProductID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Delete(&entity.OrderLine{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Order{}, "id = ?", order.ID).Error
	})
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(SalonScope(ctx))

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Lines.Product").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}
