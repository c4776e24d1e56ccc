package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueCommission is a tiered commission rule: an ordered list of
// non-overlapping service-amount ranges, each mapped to a percentage or a
// flat amount depending on CommissionType.
type RevenueCommission struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	SalonID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"salon_id"`
	BranchID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"branch_id"`
	CommissionName string              `gorm:"size:255;not null" json:"commission_name"`
	CommissionType enum.CommissionType `gorm:"size:20;not null" json:"commission_type"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	Salon Salon            `gorm:"foreignKey:SalonID" json:"-"`
	Slots []CommissionSlot `gorm:"foreignKey:CommissionID" json:"commission"`
}

// BeforeCreate generates a UUID before creating a new commission rule
func (r *RevenueCommission) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RevenueCommission model
func (RevenueCommission) TableName() string {
	return "revenue_commissions"
}

// ValidateSlots checks every slot parses and that no two ranges overlap.
// Enforced when a commission rule is written so reads can rely on
// first-match-wins without ambiguity.
func (r *RevenueCommission) ValidateSlots() error {
	type span struct{ min, max float64 }
	spans := make([]span, 0, len(r.Slots))
	for _, slot := range r.Slots {
		min, max, err := slot.Range()
		if err != nil {
			return err
		}
		if min > max {
			return fmt.Errorf("commission slot %q: min exceeds max", slot.Slot)
		}
		spans = append(spans, span{min, max})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].min < spans[j].min })
	for i := 1; i < len(spans); i++ {
		if spans[i].min <= spans[i-1].max {
			return fmt.Errorf("commission slots overlap around %v", spans[i].min)
		}
	}
	return nil
}

// CommissionForCents computes the commission in cents for one service line
// amount (in cents). The first slot whose range contains the amount wins;
// no matching slot contributes zero. Results are rounded to 2 decimals.
func (r *RevenueCommission) CommissionForCents(amountCents int64) int64 {
	amount := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(100))
	for _, slot := range r.Slots {
		min, max, err := slot.Range()
		if err != nil {
			continue
		}
		af, _ := amount.Float64()
		if af < min || af > max {
			continue
		}
		value := decimal.NewFromFloat(slot.Amount)
		if r.CommissionType == enum.CommissionPercentage {
			value = amount.Mul(value).Div(decimal.NewFromInt(100))
		}
		return value.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	}
	return 0
}

// CommissionSlot maps a "min-max" service-amount range (in currency units)
// to a commission value.
type CommissionSlot struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CommissionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"commission_id"`
	Slot         string         `gorm:"size:50;not null" json:"slot"`
	Amount       float64        `gorm:"not null" json:"amount"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new commission slot
func (s *CommissionSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionSlot model
func (CommissionSlot) TableName() string {
	return "commission_slots"
}

// Range parses the "min-max" slot string into numeric bounds
func (s *CommissionSlot) Range() (float64, float64, error) {
	parts := strings.SplitN(s.Slot, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed commission slot %q", s.Slot)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed commission slot %q: %w", s.Slot, err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed commission slot %q: %w", s.Slot, err)
	}
	return min, max, nil
}
