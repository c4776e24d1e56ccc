package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Salon is the tenant. Every other entity is scoped by SalonID.
type Salon struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonName     string         `gorm:"size:255;not null" json:"salon_name"`
	Address       string         `gorm:"size:255" json:"address"`
	ContactNumber string         `gorm:"size:50" json:"contact_number"`
	ContactEmail  string         `gorm:"size:255" json:"contact_email"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new salon
func (s *Salon) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Salon model
func (Salon) TableName() string {
	return "salons"
}

// Branch is a physical location of a salon
type Branch struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"salon_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Address       string         `gorm:"size:255" json:"address"`
	ContactNumber string         `gorm:"size:50" json:"contact_number"`
	ContactEmail  string         `gorm:"size:255" json:"contact_email"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Salon Salon `gorm:"foreignKey:SalonID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
