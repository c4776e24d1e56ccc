package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/google/uuid"
)

// OrderHandler handles retail order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles creating a retail order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		BranchID:      req.BranchID,
		CustomerID:    req.CustomerID,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Lines:         orderLines(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		StartDate:  parseDate(filter.StartDate),
		EndDate:    parseDate(filter.EndDate),
	}

	if filter.CustomerID != "" {
		if customerID, err := uuid.Parse(filter.CustomerID); err == nil {
			params.CustomerID = &customerID
		}
	}

	if filter.BranchID != "" {
		if branchID, err := uuid.Parse(filter.BranchID); err == nil {
			params.BranchID = &branchID
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Update handles changing an order's payment method or lines
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, orderLines(req.Lines), enum.PaymentMethod(req.PaymentMethod))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Delete handles voiding an order and restoring stock
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
