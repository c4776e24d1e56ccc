package enum

// PaymentStatus tracks whether an appointment has been settled
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// IsValid reports whether the payment status is a known state
func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPaid
}
