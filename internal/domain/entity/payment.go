package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is the settlement record for an appointment. At most one payment
// settles an appointment; the unique index on AppointmentID enforces it.
// Never mutated after creation.
type Payment struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SalonID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"salon_id"`
	BranchID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"branch_id"`
	AppointmentID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	ServiceAmount      int64              `gorm:"default:0" json:"-"` // Stored in cents
	ProductAmount      int64              `gorm:"default:0" json:"-"` // Stored in cents
	SubTotal           int64              `gorm:"default:0" json:"-"` // Stored in cents
	CouponID           *uuid.UUID         `gorm:"type:uuid" json:"coupon_id,omitempty"`
	CouponDiscount     int64              `gorm:"default:0" json:"-"` // Stored in cents
	AdditionalDiscount int64              `gorm:"default:0" json:"-"` // Stored in cents
	TaxID              *uuid.UUID         `gorm:"type:uuid" json:"tax_id,omitempty"`
	TaxAmount          int64              `gorm:"default:0" json:"-"` // Stored in cents
	Tips               int64              `gorm:"default:0" json:"-"` // Stored in cents
	FinalTotal         int64              `gorm:"not null" json:"-"`  // Stored in cents
	PaymentMethod      enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"`

	Salon       Salon       `gorm:"foreignKey:SalonID" json:"-"`
	Branch      Branch      `gorm:"foreignKey:BranchID" json:"-"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		ServiceAmount      float64 `json:"service_amount"`
		ProductAmount      float64 `json:"product_amount"`
		SubTotal           float64 `json:"sub_total"`
		CouponDiscount     float64 `json:"coupon_discount"`
		AdditionalDiscount float64 `json:"additional_discount"`
		TaxAmount          float64 `json:"tax_amount"`
		Tips               float64 `json:"tips"`
		FinalTotal         float64 `json:"final_total"`
	}{
		Alias:              Alias(p),
		ServiceAmount:      float64(p.ServiceAmount) / 100,
		ProductAmount:      float64(p.ProductAmount) / 100,
		SubTotal:           float64(p.SubTotal) / 100,
		CouponDiscount:     float64(p.CouponDiscount) / 100,
		AdditionalDiscount: float64(p.AdditionalDiscount) / 100,
		TaxAmount:          float64(p.TaxAmount) / 100,
		Tips:               float64(p.Tips) / 100,
		FinalTotal:         float64(p.FinalTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
