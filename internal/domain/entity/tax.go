package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tax is a percent or fixed levy. Percent taxes are computed on the
// settlement sub-total before discounts.
type Tax struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SalonID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"salon_id"`
	Title     string            `gorm:"size:255;not null" json:"title"`
	Type      enum.DiscountType `gorm:"size:20;not null" json:"type"`
	Percent   int               `gorm:"default:0" json:"percent"`
	Value     int64             `gorm:"default:0" json:"-"` // Stored in cents
	Status    enum.EntityStatus `gorm:"default:1" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	Salon Salon `gorm:"foreignKey:SalonID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Tax) MarshalJSON() ([]byte, error) {
	type Alias Tax
	return json.Marshal(&struct {
		Alias
		Value float64 `json:"value"`
	}{
		Alias: Alias(t),
		Value: float64(t.Value) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new tax
func (t *Tax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tax model
func (Tax) TableName() string {
	return "taxes"
}
