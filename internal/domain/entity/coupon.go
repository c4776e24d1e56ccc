package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon is a time-bounded discount. Percent coupons carry DiscountPercent;
// fixed coupons carry DiscountAmount in cents.
type Coupon struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SalonID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"salon_id"`
	Name            string            `gorm:"size:255;not null" json:"name"`
	CouponCode      string            `gorm:"size:100;unique;not null" json:"coupon_code"`
	Description     string            `gorm:"type:text" json:"description,omitempty"`
	DiscountType    enum.DiscountType `gorm:"size:20;not null" json:"discount_type"`
	DiscountPercent int               `gorm:"default:0" json:"discount_percent"`
	DiscountAmount  int64             `gorm:"default:0" json:"-"` // Stored in cents
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	UseLimit        int               `gorm:"default:0" json:"use_limit"`
	Status          enum.EntityStatus `gorm:"default:1" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Salon Salon `gorm:"foreignKey:SalonID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Coupon) MarshalJSON() ([]byte, error) {
	type Alias Coupon
	return json.Marshal(&struct {
		Alias
		DiscountAmount float64 `json:"discount_amount"`
	}{
		Alias:          Alias(c),
		DiscountAmount: float64(c.DiscountAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new coupon
func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}

// ActiveAt reports whether the coupon applies at the given instant
func (c *Coupon) ActiveAt(t time.Time) bool {
	return c.Status == enum.StatusActive && !t.Before(c.StartDate) && !t.After(c.EndDate)
}
