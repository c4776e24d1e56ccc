package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry for bookable salon work
type Service struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SalonID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"salon_id"`
	Name            string            `gorm:"size:255;not null" json:"name"`
	DurationMinutes int               `gorm:"default:0" json:"service_duration"`
	RegularPrice    int64             `gorm:"not null" json:"-"` // Stored in cents
	MembersPrice    int64             `gorm:"default:0" json:"-"` // Stored in cents
	Description     string            `gorm:"type:text" json:"description,omitempty"`
	Status          enum.EntityStatus `gorm:"default:1" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Salon Salon `gorm:"foreignKey:SalonID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		RegularPrice float64 `json:"regular_price"`
		MembersPrice float64 `json:"members_price"`
	}{
		Alias:        Alias(s),
		RegularPrice: float64(s.RegularPrice) / 100,
		MembersPrice: float64(s.MembersPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
