package enum

// PaymentMethod is how a customer or staff payout was paid
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodUPI    PaymentMethod = "upi"
	MethodOnline PaymentMethod = "online"
)

// IsValidOrderMethod reports whether the method is accepted on product orders
func (m PaymentMethod) IsValidOrderMethod() bool {
	return m == MethodCash || m == MethodCard || m == MethodUPI
}

// IsValidPayoutMethod reports whether the method is accepted on staff payouts
func (m PaymentMethod) IsValidPayoutMethod() bool {
	return m == MethodCash || m == MethodCard || m == MethodOnline
}
