package request

// PayoutRequest represents a staff payout request
type PayoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	Description   string `json:"description" binding:"max=500"`
}
