package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is the booking aggregate. Service and product lines are owned
// value collections: they are only ever replaced through the booking engine's
// re-pricing path, never edited field by field, so the invariant
// TotalPayment == sum(service amounts) + sum(product totals) holds in one place.
type Appointment struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	SalonID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"salon_id"`
	CustomerID      uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	BranchID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"branch_id"`
	AppointmentDate time.Time              `gorm:"not null;index" json:"appointment_date"`
	AppointmentTime string                 `gorm:"size:20;not null" json:"appointment_time"`
	Notes           string                 `gorm:"type:text" json:"notes,omitempty"`
	Status          enum.AppointmentStatus `gorm:"size:20;default:upcoming" json:"status"`
	PaymentStatus   enum.PaymentStatus     `gorm:"size:20;default:Pending" json:"payment_status"`
	ServiceTotal    int64                  `gorm:"default:0" json:"-"` // Stored in cents
	ProductTotal    int64                  `gorm:"default:0" json:"-"` // Stored in cents
	TotalPayment    int64                  `gorm:"default:0" json:"-"` // Stored in cents
	OrderCode       string                 `gorm:"size:100;unique;not null" json:"order_code"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	DeletedAt       gorm.DeletedAt         `gorm:"index" json:"-"`

	Salon    Salon                `gorm:"foreignKey:SalonID" json:"-"`
	Customer Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   Branch               `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services,omitempty"`
	Products []AppointmentProduct `gorm:"foreignKey:AppointmentID" json:"products,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a Appointment) MarshalJSON() ([]byte, error) {
	type Alias Appointment
	return json.Marshal(&struct {
		Alias
		ServiceTotal float64 `json:"service_total"`
		ProductTotal float64 `json:"product_total"`
		TotalPayment float64 `json:"total_payment"`
	}{
		Alias:        Alias(a),
		ServiceTotal: float64(a.ServiceTotal) / 100,
		ProductTotal: float64(a.ProductTotal) / 100,
		TotalPayment: float64(a.TotalPayment) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ServiceAmountSum returns the sum of the service line amounts in cents
func (a *Appointment) ServiceAmountSum() int64 {
	var sum int64
	for _, s := range a.Services {
		sum += s.Amount
	}
	return sum
}

// ProductTotalSum returns the sum of the product line totals in cents
func (a *Appointment) ProductTotalSum() int64 {
	var sum int64
	for _, p := range a.Products {
		sum += p.TotalPrice
	}
	return sum
}

// DistinctStaffIDs returns the unique staff referenced by the service lines
func (a *Appointment) DistinctStaffIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a.Services))
	ids := make([]uuid.UUID, 0, len(a.Services))
	for _, s := range a.Services {
		if _, ok := seen[s.StaffID]; ok {
			continue
		}
		seen[s.StaffID] = struct{}{}
		ids = append(ids, s.StaffID)
	}
	return ids
}

// AppointmentService is one booked service line. Amount is zero when the line
// was covered by a customer package.
type AppointmentService struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ServiceID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	StaffID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"staff_id"`
	Amount           int64          `gorm:"default:0" json:"-"` // Stored in cents
	UsedPackage      bool           `gorm:"default:false" json:"used_package"`
	PackageID        *uuid.UUID     `gorm:"type:uuid" json:"package_id,omitempty"`
	Paid             bool           `gorm:"default:false;index" json:"paid"`
	CommissionEarned int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Staff   Staff   `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s AppointmentService) MarshalJSON() ([]byte, error) {
	type Alias AppointmentService
	return json.Marshal(&struct {
		Alias
		Amount           float64 `json:"service_amount"`
		CommissionEarned float64 `json:"commission_earned"`
	}{
		Alias:            Alias(s),
		Amount:           float64(s.Amount) / 100,
		CommissionEarned: float64(s.CommissionEarned) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new service line
func (s *AppointmentService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AppointmentService model
func (AppointmentService) TableName() string {
	return "appointment_services"
}

// AppointmentProduct is one retail line on an appointment
type AppointmentProduct struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID     *uuid.UUID     `gorm:"type:uuid" json:"variant_id,omitempty"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	UnitPrice     int64          `gorm:"not null" json:"-"` // Stored in cents
	TotalPrice    int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p AppointmentProduct) MarshalJSON() ([]byte, error) {
	type Alias AppointmentProduct
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(p),
		UnitPrice:  float64(p.UnitPrice) / 100,
		TotalPrice: float64(p.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product line
func (p *AppointmentProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AppointmentProduct model
func (AppointmentProduct) TableName() string {
	return "appointment_products"
}
