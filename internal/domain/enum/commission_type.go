package enum

// CommissionType selects how a matched commission slot is applied
type CommissionType string

const (
	CommissionPercentage CommissionType = "Percentage"
	CommissionFixed      CommissionType = "Fixed"
)

// IsValid reports whether the commission type is a known value
func (t CommissionType) IsValid() bool {
	return t == CommissionPercentage || t == CommissionFixed
}
