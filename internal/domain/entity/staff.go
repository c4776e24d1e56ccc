package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff represents a salon employee who performs services.
// CommissionID is the single source of the assigned commission rule.
type Staff struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"salon_id"`
	BranchID     *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Email        string         `gorm:"size:255" json:"email"`
	PhoneNumber  string         `gorm:"size:50" json:"phone_number"`
	CommissionID *uuid.UUID     `gorm:"type:uuid;index" json:"commission_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Salon  Salon   `gorm:"foreignKey:SalonID" json:"-"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
