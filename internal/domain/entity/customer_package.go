package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerPackage is a pre-purchased bundle of service entitlements with a
// validity window. It is usable for a service only while EndDate has not
// passed and the matching item still has quantity left.
type CustomerPackage struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"salon_id"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	PackageName  string         `gorm:"size:255" json:"package_name"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	PackagePrice int64          `gorm:"default:0" json:"-"` // Stored in cents
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `gorm:"index" json:"end_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Salon    Salon                 `gorm:"foreignKey:SalonID" json:"-"`
	Customer Customer              `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []CustomerPackageItem `gorm:"foreignKey:PackageID" json:"package_details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p CustomerPackage) MarshalJSON() ([]byte, error) {
	type Alias CustomerPackage
	return json.Marshal(&struct {
		Alias
		PackagePrice float64 `json:"package_price"`
	}{
		Alias:        Alias(p),
		PackagePrice: float64(p.PackagePrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new package
func (p *CustomerPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerPackage model
func (CustomerPackage) TableName() string {
	return "customer_packages"
}

// CustomerPackageItem is a remaining-use counter for one service inside a
// package. Quantity never goes below zero; consumption is a conditional
// decrement at the repository level.
type CustomerPackageItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PackageID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"package_id"`
	ServiceID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	DiscountedPrice int64          `gorm:"default:0" json:"-"` // Stored in cents
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i CustomerPackageItem) MarshalJSON() ([]byte, error) {
	type Alias CustomerPackageItem
	return json.Marshal(&struct {
		Alias
		DiscountedPrice float64 `json:"discounted_price"`
	}{
		Alias:           Alias(i),
		DiscountedPrice: float64(i.DiscountedPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new package item
func (i *CustomerPackageItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerPackageItem model
func (CustomerPackageItem) TableName() string {
	return "customer_package_items"
}
