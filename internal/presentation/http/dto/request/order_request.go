package request

import "github.com/google/uuid"

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	BranchID      uuid.UUID          `json:"branch_id" binding:"required"`
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderRequest represents an order update request.
// An omitted lines array keeps the existing lines and stock levels.
type UpdateOrderRequest struct {
	PaymentMethod string             `json:"payment_method" binding:"required"`
	Lines         []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	CustomerID string `form:"customer_id"`
	BranchID   string `form:"branch_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
