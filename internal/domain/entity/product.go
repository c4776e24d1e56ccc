package entity

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a retail catalog entry. When HasVariants is set, price and stock
// live on the variants and the product-level fields act as defaults.
type Product struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SalonID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"salon_id"`
	Name        string            `gorm:"size:255;not null" json:"product_name"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	Price       int64             `gorm:"default:0" json:"-"` // Stored in cents
	Stock       int               `gorm:"default:0" json:"stock"`
	SKU         string            `gorm:"size:100" json:"sku,omitempty"`
	HasVariants bool              `gorm:"default:false" json:"has_variants"`
	Status      enum.EntityStatus `gorm:"default:1" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	Salon    Salon            `gorm:"foreignKey:SalonID" json:"-"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// FindVariant returns the variant with the given id, or nil
func (p *Product) FindVariant(variantID uuid.UUID) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// ProductVariant is a sellable combination of a product (size, color, ...)
// with its own price and stock.
type ProductVariant struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Combination string         `gorm:"size:255" json:"combination"`
	Price       int64          `gorm:"not null" json:"-"` // Stored in cents
	Stock       int            `gorm:"default:0" json:"stock"`
	SKU         string         `gorm:"size:100" json:"sku,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (v ProductVariant) MarshalJSON() ([]byte, error) {
	type Alias ProductVariant
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(v),
		Price: float64(v.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new variant
func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}
