package repository

import (
	"context"
	"errors"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when an order line asks for more units
// than the product or variant has on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository defines the interface for walk-in product sale operations
type OrderRepository interface {
	// CreateWithStockDeduction creates the order and its lines and decrements
	// product (or variant) stock in a single transaction. If any line lacks
	// sufficient stock the whole transaction rolls back.
	CreateWithStockDeduction(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderCode(ctx context.Context, code string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// ReplaceLinesWithStockAdjustment restores stock for the old lines,
	// deducts stock for the new ones and swaps them on the order, all in a
	// single transaction.
	ReplaceLinesWithStockAdjustment(ctx context.Context, order *entity.Order, oldLines, newLines []entity.OrderLine) error
	// DeleteWithStockRestore soft-deletes the order after returning its line
	// quantities to stock.
	DeleteWithStockRestore(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
