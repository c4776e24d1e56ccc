package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a stock-deducting product sale. Line totals are immutable once the
// stock decrement has been committed; re-pricing goes through the order
// service, which re-validates against the catalog.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SalonID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"salon_id"`
	BranchID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"branch_id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	TotalPrice    int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	OrderCode     string             `gorm:"size:100;unique;not null" json:"order_code"`
	InvoicePDFURL string             `gorm:"size:255" json:"invoice_pdf_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	Salon    Salon       `gorm:"foreignKey:SalonID" json:"-"`
	Branch   Branch      `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"products,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(o),
		TotalPrice: float64(o.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a line item in a product order
type OrderLine struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID  *uuid.UUID     `gorm:"type:uuid" json:"variant_id,omitempty"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents
	TotalPrice int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order           `gorm:"foreignKey:OrderID" json:"-"`
	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(l),
		UnitPrice:  float64(l.UnitPrice) / 100,
		TotalPrice: float64(l.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
