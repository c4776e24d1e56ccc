package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffEarning is the working aggregate of a staff member's unpaid earnings.
// It is a system-computed cache: recomputed on each aggregation pass and
// deleted once a payout is recorded. StaffPayment is the ledger of record.
type StaffEarning struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_earning_staff_salon,unique" json:"salon_id"`
	StaffID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_earning_staff_salon,unique" json:"staff_id"`
	TotalBooking      int            `gorm:"default:0" json:"total_booking"`
	ServiceAmount     int64          `gorm:"default:0" json:"-"` // Stored in cents
	CommissionEarning int64          `gorm:"default:0" json:"-"` // Stored in cents
	TipEarning        int64          `gorm:"default:0" json:"-"` // Stored in cents
	StaffEarning      int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Staff Staff `gorm:"foreignKey:StaffID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e StaffEarning) MarshalJSON() ([]byte, error) {
	type Alias StaffEarning
	return json.Marshal(&struct {
		Alias
		ServiceAmount     float64 `json:"service_amount"`
		CommissionEarning float64 `json:"commission_earning"`
		TipEarning        float64 `json:"tip_earning"`
		StaffEarning      float64 `json:"staff_earning"`
	}{
		Alias:             Alias(e),
		ServiceAmount:     float64(e.ServiceAmount) / 100,
		CommissionEarning: float64(e.CommissionEarning) / 100,
		TipEarning:        float64(e.TipEarning) / 100,
		StaffEarning:      float64(e.StaffEarning) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new earning aggregate
func (e *StaffEarning) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StaffEarning model
func (StaffEarning) TableName() string {
	return "staff_earnings"
}

// StaffPayment is an append-only payout record: the system of record for
// what has actually been paid to a staff member.
type StaffPayment struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SalonID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"salon_id"`
	StaffID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"staff_id"`
	TotalPaid        int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod    enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Description      string             `gorm:"type:text" json:"description,omitempty"`
	Tips             int64              `gorm:"default:0" json:"-"` // Stored in cents
	CommissionAmount int64              `gorm:"default:0" json:"-"` // Stored in cents
	PaidAt           time.Time          `json:"paid_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	Staff Staff `gorm:"foreignKey:StaffID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p StaffPayment) MarshalJSON() ([]byte, error) {
	type Alias StaffPayment
	return json.Marshal(&struct {
		Alias
		TotalPaid        float64 `json:"total_paid"`
		Tips             float64 `json:"tips"`
		CommissionAmount float64 `json:"commission_amount"`
	}{
		Alias:            Alias(p),
		TotalPaid:        float64(p.TotalPaid) / 100,
		Tips:             float64(p.Tips) / 100,
		CommissionAmount: float64(p.CommissionAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new staff payment
func (p *StaffPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	return nil
}

// TableName returns the table name for the StaffPayment model
func (StaffPayment) TableName() string {
	return "staff_payments"
}
