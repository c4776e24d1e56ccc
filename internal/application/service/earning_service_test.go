package service

import (
	"testing"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipShare(t *testing.T) {
	assert.Equal(t, int64(5000), tipShare(10000, 2))
	assert.Equal(t, int64(3333), tipShare(10000, 3))
	assert.Equal(t, int64(0), tipShare(0, 2))
	assert.Equal(t, int64(0), tipShare(10000, 0))
}

func TestGetStaffEarningAppliesCommissionSlab(t *testing.T) {
	env := newTestEnv(t)
	rule := env.createCommission(t, "Senior Stylist", enum.CommissionPercentage, map[string]float64{
		"500-1000": 15,
	})
	staff := env.createStaff(t, "Meera", &rule.ID)
	spa := env.createService(t, "Hair Spa", 70000)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	earning, err := env.earnings.GetStaffEarning(env.ctx, staff.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, earning.TotalBooking)
	assert.Equal(t, int64(70000), earning.ServiceAmount)
	// 700.00 falls in the 500-1000 slab: 15% of 700.00
	assert.Equal(t, int64(10500), earning.CommissionEarning)
	assert.Equal(t, int64(10500), earning.StaffEarning)
}

func TestGetStaffEarningNoMatchingSlab(t *testing.T) {
	env := newTestEnv(t)
	rule := env.createCommission(t, "Senior Stylist", enum.CommissionPercentage, map[string]float64{
		"500-1000": 15,
	})
	staff := env.createStaff(t, "Meera", &rule.ID)
	spa := env.createService(t, "Keratin", 120000)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	earning, err := env.earnings.GetStaffEarning(env.ctx, staff.ID)
	require.NoError(t, err)

	// 1200.00 falls outside every slab and earns nothing.
	assert.Equal(t, int64(120000), earning.ServiceAmount)
	assert.Equal(t, int64(0), earning.CommissionEarning)
}

func TestEarningsIgnoreAppointmentsNotCheckedOut(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "Meera", nil)
	spa := env.createService(t, "Hair Spa", 70000)

	env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	earning, err := env.earnings.GetStaffEarning(env.ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, earning.TotalBooking)
	assert.Equal(t, int64(0), earning.ServiceAmount)
}

func TestEarningsSplitTipsAcrossStaff(t *testing.T) {
	env := newTestEnv(t)
	meera := env.createStaff(t, "Meera", nil)
	ravi := env.createStaff(t, "Ravi", nil)
	spa := env.createService(t, "Hair Spa", 70000)
	cut := env.createService(t, "Hair Cut", 30000)

	appointment := env.bookAppointment(t, []ServiceLineInput{
		{ServiceID: spa.ID, StaffID: meera.ID},
		{ServiceID: cut.ID, StaffID: ravi.ID},
	})
	env.checkOut(t, appointment.ID)

	_, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCash,
		Tips:          10000,
	})
	require.NoError(t, err)

	meeraEarning, err := env.earnings.GetStaffEarning(env.ctx, meera.ID)
	require.NoError(t, err)
	raviEarning, err := env.earnings.GetStaffEarning(env.ctx, ravi.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), meeraEarning.TipEarning)
	assert.Equal(t, int64(5000), raviEarning.TipEarning)
}

func TestRecomputeAllIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "Meera", nil)
	spa := env.createService(t, "Hair Spa", 70000)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	first, err := env.earnings.RecomputeAll(env.ctx)
	require.NoError(t, err)
	second, err := env.earnings.RecomputeAll(env.ctx)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ServiceAmount, second[0].ServiceAmount)
	assert.Equal(t, first[0].TotalBooking, second[0].TotalBooking)

	var count int64
	require.NoError(t, env.db.Model(&entity.StaffEarning{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPayoutMarksLinesPaidAndClearsCache(t *testing.T) {
	env := newTestEnv(t)
	rule := env.createCommission(t, "Stylist", enum.CommissionPercentage, map[string]float64{
		"0-10000": 10,
	})
	staff := env.createStaff(t, "Meera", &rule.ID)
	spa := env.createService(t, "Hair Spa", 70000)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	_, err := env.earnings.RecomputeAll(env.ctx)
	require.NoError(t, err)

	payout, err := env.earnings.Payout(env.ctx, staff.ID, &PayoutInput{
		PaymentMethod: enum.MethodCash,
		Description:   "July payout",
	})
	require.NoError(t, err)

	// 10% of 700.00
	assert.Equal(t, int64(7000), payout.CommissionAmount)
	assert.Equal(t, int64(7000), payout.TotalPaid)
	assert.False(t, payout.PaidAt.IsZero())

	var line entity.AppointmentService
	require.NoError(t, env.db.First(&line, "appointment_id = ?", appointment.ID).Error)
	assert.True(t, line.Paid)

	var cached int64
	require.NoError(t, env.db.Model(&entity.StaffEarning{}).Count(&cached).Error)
	assert.Equal(t, int64(0), cached)

	// Paid lines never re-enter the aggregate.
	earning, err := env.earnings.GetStaffEarning(env.ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, earning.TotalBooking)
	assert.Equal(t, int64(0), earning.StaffEarning)
}

func TestPayoutWithoutUnpaidEarnings(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "Meera", nil)

	_, err := env.earnings.Payout(env.ctx, staff.ID, &PayoutInput{PaymentMethod: enum.MethodCash})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPayoutConflictRollsBackClaimedLines(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "Meera", nil)
	spa := env.createService(t, "Hair Spa", 70000)

	first := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, first.ID)
	second := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, second.ID)

	var lines []entity.AppointmentService
	require.NoError(t, env.db.Find(&lines, "appointment_id IN ?", []uuid.UUID{first.ID, second.ID}).Error)
	require.Len(t, lines, 2)
	lineIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		lineIDs = append(lineIDs, line.ID)
	}

	// A competing payout claimed the first appointment's line between
	// compute and claim.
	require.NoError(t, env.db.Model(&entity.AppointmentService{}).
		Where("appointment_id = ?", first.ID).
		Update("paid", true).Error)

	payment := &entity.StaffPayment{
		SalonID:       env.salon.ID,
		StaffID:       staff.ID,
		TotalPaid:     140000,
		PaymentMethod: enum.MethodCash,
	}
	err := infraRepo.NewStaffPaymentRepository(env.db).
		CreateWithClaim(env.ctx, payment, lineIDs)
	require.ErrorIs(t, err, repository.ErrPayoutConflict)

	// The line the losing claim did flip must be released again, and no
	// payout may be recorded.
	var remaining entity.AppointmentService
	require.NoError(t, env.db.First(&remaining, "appointment_id = ?", second.ID).Error)
	assert.False(t, remaining.Paid)

	var payouts int64
	require.NoError(t, env.db.Model(&entity.StaffPayment{}).Count(&payouts).Error)
	assert.Equal(t, int64(0), payouts)
}

func TestDeleteEarningRequiresCachedAggregate(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "Meera", nil)

	err := env.earnings.DeleteEarning(env.ctx, staff.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	spa := env.createService(t, "Hair Spa", 70000)
	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	_, err = env.earnings.RecomputeAll(env.ctx)
	require.NoError(t, err)

	require.NoError(t, env.earnings.DeleteEarning(env.ctx, staff.ID))

	var cached int64
	require.NoError(t, env.db.Model(&entity.StaffEarning{}).Count(&cached).Error)
	assert.Equal(t, int64(0), cached)
}
