package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/google/uuid"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	bookingService *service.BookingService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(bookingService *service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{bookingService: bookingService}
}

func serviceLines(reqs []request.ServiceLineRequest) []service.ServiceLineInput {
	if reqs == nil {
		return nil
	}
	lines := make([]service.ServiceLineInput, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, service.ServiceLineInput{ServiceID: r.ServiceID, StaffID: r.StaffID})
	}
	return lines
}

func orderLines(reqs []request.OrderLineRequest) []service.OrderLineInput {
	if reqs == nil {
		return nil
	}
	lines := make([]service.OrderLineInput, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, service.OrderLineInput{ProductID: r.ProductID, VariantID: r.VariantID, Quantity: r.Quantity})
	}
	return lines
}

// Create handles booking a new appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		response.BadRequest(c, "Invalid appointment_date, expected YYYY-MM-DD")
		return
	}

	status := enum.AppointmentUpcoming
	if req.Status != "" {
		status = enum.AppointmentStatus(req.Status)
	}

	method := enum.MethodCash
	if req.PaymentMethod != "" {
		method = enum.PaymentMethod(req.PaymentMethod)
	}

	appointment, err := h.bookingService.CreateAppointment(c.Request.Context(), &service.CreateAppointmentInput{
		CustomerID:      req.CustomerID,
		BranchID:        req.BranchID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
		Status:          status,
		PaymentMethod:   method,
		Services:        serviceLines(req.Services),
		Products:        orderLines(req.Products),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment booked successfully", appointment)
}

// Update handles rescheduling and re-pricing an appointment
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateAppointmentInput{
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
		Services:        serviceLines(req.Services),
		Products:        orderLines(req.Products),
	}

	if req.AppointmentDate != nil {
		date, err := time.Parse(dateLayout, *req.AppointmentDate)
		if err != nil {
			response.BadRequest(c, "Invalid appointment_date, expected YYYY-MM-DD")
			return
		}
		input.AppointmentDate = &date
	}

	appointment, err := h.bookingService.UpdateAppointment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment updated successfully", appointment)
}

// PatchStatus handles moving an appointment through its lifecycle
func (h *AppointmentHandler) PatchStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.PatchAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var status *enum.AppointmentStatus
	if req.Status != nil {
		s := enum.AppointmentStatus(*req.Status)
		status = &s
	}

	var paymentStatus *enum.PaymentStatus
	if req.PaymentStatus != nil {
		p := enum.PaymentStatus(*req.PaymentStatus)
		paymentStatus = &p
	}

	appointment, err := h.bookingService.PatchStatus(c.Request.Context(), id, status, paymentStatus)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment status updated successfully", appointment)
}

// Get handles getting a single appointment with its lines
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.bookingService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// Delete handles cancelling an appointment record
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	if err := h.bookingService.DeleteAppointment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing appointments with filters
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AppointmentFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Date:       parseDate(filter.Date),
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

	if filter.Status != "" {
		status := enum.AppointmentStatus(filter.Status)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if filter.PaymentStatus != "" {
		paymentStatus := enum.PaymentStatus(filter.PaymentStatus)
		if !paymentStatus.IsValid() {
			response.BadRequest(c, "Invalid payment_status filter")
			return
		}
		params.PaymentStatus = &paymentStatus
	}

	result, err := h.bookingService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// ListUpcoming handles listing appointments still ahead of the current time
func (h *AppointmentHandler) ListUpcoming(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.bookingService.ListUpcoming(c.Request.Context(), pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Upcoming appointments retrieved successfully", result)
}

// OrderReport handles listing appointments that carry product lines
func (h *AppointmentHandler) OrderReport(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.bookingService.OrderReport(c.Request.Context(), pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Order report retrieved successfully", result)
}
