package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/google/uuid"
)

// StaffEarningHandler handles staff earning HTTP requests
type StaffEarningHandler struct {
	earningService *service.EarningService
}

// NewStaffEarningHandler creates a new staff earning handler
func NewStaffEarningHandler(earningService *service.EarningService) *StaffEarningHandler {
	return &StaffEarningHandler{earningService: earningService}
}

// List recomputes and returns the unpaid earnings of every staff member
func (h *StaffEarningHandler) List(c *gin.Context) {
	earnings, err := h.earningService.RecomputeAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff earnings retrieved successfully", earnings)
}

// Get returns one staff member's current unpaid earnings
func (h *StaffEarningHandler) Get(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	earning, err := h.earningService.GetStaffEarning(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff earning retrieved successfully", earning)
}

// Pay settles a staff member's unpaid earnings into a payout record
func (h *StaffEarningHandler) Pay(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staff_id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payout, err := h.earningService.Payout(c.Request.Context(), staffID, &service.PayoutInput{
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff payout recorded successfully", payout)
}

// Delete clears a staff member's cached earning aggregate
func (h *StaffEarningHandler) Delete(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	if err := h.earningService.DeleteEarning(c.Request.Context(), staffID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
