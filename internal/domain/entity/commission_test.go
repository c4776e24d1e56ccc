package entity

import (
	"testing"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionSlotRange(t *testing.T) {
	slot := CommissionSlot{Slot: "500-1000"}
	min, max, err := slot.Range()
	require.NoError(t, err)
	assert.Equal(t, 500.0, min)
	assert.Equal(t, 1000.0, max)

	_, _, err = (&CommissionSlot{Slot: "garbage"}).Range()
	assert.Error(t, err)
}

func TestValidateSlots(t *testing.T) {
	rule := RevenueCommission{
		CommissionType: enum.CommissionPercentage,
		Slots: []CommissionSlot{
			{Slot: "0-499", Amount: 5},
			{Slot: "500-1000", Amount: 15},
		},
	}
	assert.NoError(t, rule.ValidateSlots())

	overlapping := RevenueCommission{
		Slots: []CommissionSlot{
			{Slot: "0-600", Amount: 5},
			{Slot: "500-1000", Amount: 15},
		},
	}
	assert.Error(t, overlapping.ValidateSlots())

	inverted := RevenueCommission{
		Slots: []CommissionSlot{{Slot: "1000-500", Amount: 15}},
	}
	assert.Error(t, inverted.ValidateSlots())
}

func TestCommissionForCents(t *testing.T) {
	percentage := RevenueCommission{
		CommissionType: enum.CommissionPercentage,
		Slots: []CommissionSlot{
			{Slot: "0-499", Amount: 5},
			{Slot: "500-1000", Amount: 15},
		},
	}

	// 700.00 matches the second slab: 15% of 700.00 = 105.00
	assert.Equal(t, int64(10500), percentage.CommissionForCents(70000))
	// 100.00 matches the first slab: 5% of 100.00 = 5.00
	assert.Equal(t, int64(500), percentage.CommissionForCents(10000))
	// 1200.00 matches no slab
	assert.Equal(t, int64(0), percentage.CommissionForCents(120000))

	fixed := RevenueCommission{
		CommissionType: enum.CommissionFixed,
		Slots: []CommissionSlot{
			{Slot: "500-1000", Amount: 50},
		},
	}
	assert.Equal(t, int64(5000), fixed.CommissionForCents(70000))
}

func TestCommissionMalformedSlotSkipped(t *testing.T) {
	rule := RevenueCommission{
		CommissionType: enum.CommissionPercentage,
		Slots: []CommissionSlot{
			{Slot: "not-a-range", Amount: 99},
			{Slot: "500-1000", Amount: 10},
		},
	}
	assert.Equal(t, int64(7000), rule.CommissionForCents(70000))
}
