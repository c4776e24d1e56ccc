package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a salon customer
type Customer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"salon_id"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	Email       string         `gorm:"size:255" json:"email"`
	PhoneNumber string         `gorm:"size:50" json:"phone_number"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Salon Salon `gorm:"foreignKey:SalonID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
