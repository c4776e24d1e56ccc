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

// PaymentHandler handles settlement HTTP requests
type PaymentHandler struct {
	settlementService *service.SettlementService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(settlementService *service.SettlementService) *PaymentHandler {
	return &PaymentHandler{settlementService: settlementService}
}

// Settle handles settling an appointment into a payment
func (h *PaymentHandler) Settle(c *gin.Context) {
	var req request.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.settlementService.Settle(c.Request.Context(), &service.SettleInput{
		AppointmentID:      req.AppointmentID,
		PaymentMethod:      enum.PaymentMethod(req.PaymentMethod),
		CouponID:           req.CouponID,
		TaxID:              req.TaxID,
		AdditionalDiscount: toCents(req.AdditionalDiscount),
		Tips:               toCents(req.Tips),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment settled successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.settlementService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// List handles listing payments within a date window
func (h *PaymentHandler) List(c *gin.Context) {
	var filter request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.settlementService.ListPayments(c.Request.Context(), &repository.PaymentFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		StartDate:  parseDate(filter.StartDate),
		EndDate:    parseDate(filter.EndDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Invoice streams the payment's invoice PDF
func (h *PaymentHandler) Invoice(c *gin.Context) {
	id, err := uuid.Parse(c.Query("invoice_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing invoice_id")
		return
	}

	path, err := h.settlementService.InvoicePath(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
