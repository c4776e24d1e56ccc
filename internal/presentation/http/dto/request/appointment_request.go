package request

import "github.com/google/uuid"

// ServiceLineRequest names one service and the staff member performing it
type ServiceLineRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StaffID   uuid.UUID `json:"staff_id" binding:"required"`
}

// OrderLineRequest names one retail product sold with the appointment or order
type OrderLineRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
}

// CreateAppointmentRequest represents an appointment creation request
type CreateAppointmentRequest struct {
	CustomerID      uuid.UUID            `json:"customer_id" binding:"required"`
	BranchID        uuid.UUID            `json:"branch_id" binding:"required"`
	AppointmentDate string               `json:"appointment_date" binding:"required"`
	AppointmentTime string               `json:"appointment_time" binding:"required"`
	Status          string               `json:"status"`
	PaymentMethod   string               `json:"payment_method"`
	Notes           string               `json:"notes" binding:"max=1000"`
	Services        []ServiceLineRequest `json:"services"`
	Products        []OrderLineRequest   `json:"products"`
}

// UpdateAppointmentRequest represents an appointment update request.
// Omitted line arrays leave the existing lines untouched.
type UpdateAppointmentRequest struct {
	AppointmentDate *string              `json:"appointment_date"`
	AppointmentTime *string              `json:"appointment_time"`
	Notes           *string              `json:"notes" binding:"omitempty,max=1000"`
	Services        []ServiceLineRequest `json:"services"`
	Products        []OrderLineRequest   `json:"products"`
}

// PatchAppointmentStatusRequest moves an appointment through its lifecycle
type PatchAppointmentStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// AppointmentFilterRequest represents appointment filter parameters
type AppointmentFilterRequest struct {
	CustomerID    string `form:"customer_id"`
	BranchID      string `form:"branch_id"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Date          string `form:"date"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
