package enum

// DiscountType distinguishes percentage discounts from flat amounts.
// Shared by coupons and taxes.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// EntityStatus is the active/inactive flag carried by coupons, taxes,
// services and products.
type EntityStatus int

const (
	StatusInactive EntityStatus = 0
	StatusActive   EntityStatus = 1
)
