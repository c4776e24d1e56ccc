package request

import "github.com/google/uuid"

// SettlePaymentRequest represents an appointment settlement request.
// Money fields arrive as currency units and are converted to cents.
type SettlePaymentRequest struct {
	AppointmentID      uuid.UUID  `json:"appointment_id" binding:"required"`
	PaymentMethod      string     `json:"payment_method" binding:"required"`
	CouponID           *uuid.UUID `json:"coupon_id"`
	TaxID              *uuid.UUID `json:"tax_id"`
	AdditionalDiscount float64    `json:"additional_discount" binding:"min=0"`
	Tips               float64    `json:"tips" binding:"min=0"`
}

// PaymentFilterRequest represents payment filter parameters
type PaymentFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
