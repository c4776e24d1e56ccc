package service

import (
	"testing"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentOf(t *testing.T) {
	// Percent amounts round to whole currency units.
	assert.Equal(t, int64(10000), percentOf(100000, 10))
	assert.Equal(t, int64(5000), percentOf(100000, 5))
	assert.Equal(t, int64(1200), percentOf(8333, 15))
	assert.Equal(t, int64(0), percentOf(100000, 0))
}

func TestSettleWithPercentCouponAndTax(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	coupon := &entity.Coupon{
		SalonID:         env.salon.ID,
		Name:            "Festive",
		CouponCode:      "FEST10",
		DiscountType:    enum.DiscountPercent,
		DiscountPercent: 10,
		StartDate:       time.Now().AddDate(0, 0, -1),
		EndDate:         time.Now().AddDate(0, 0, 1),
		Status:          enum.StatusActive,
	}
	require.NoError(t, env.db.Create(coupon).Error)

	tax := &entity.Tax{
		SalonID: env.salon.ID,
		Title:   "GST",
		Type:    enum.DiscountPercent,
		Percent: 5,
		Status:  enum.StatusActive,
	}
	require.NoError(t, env.db.Create(tax).Error)

	payment, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCard,
		CouponID:      &coupon.ID,
		TaxID:         &tax.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), payment.SubTotal)
	assert.Equal(t, int64(10000), payment.CouponDiscount)
	assert.Equal(t, int64(5000), payment.TaxAmount)
	// 1000.00 - 100.00 + 50.00
	assert.Equal(t, int64(95000), payment.FinalTotal)

	var refreshed entity.Appointment
	require.NoError(t, env.db.First(&refreshed, "id = ?", appointment.ID).Error)
	assert.Equal(t, enum.PaymentPaid, refreshed.PaymentStatus)
}

func TestSettleWithDiscountsAndTips(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Manicure", 50000)
	staff := env.createStaff(t, "Ravi", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	payment, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID:      appointment.ID,
		PaymentMethod:      enum.MethodCash,
		AdditionalDiscount: 5000,
		Tips:               10000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), payment.SubTotal)
	// 500.00 - 50.00 + 100.00 tips
	assert.Equal(t, int64(55000), payment.FinalTotal)
	assert.InDelta(t, 100.0, payment.StaffTips, 0.001)
	assert.Equal(t, 1, payment.ServiceCount)
}

func TestSettleIgnoresExpiredCoupon(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Pedicure", 30000)
	staff := env.createStaff(t, "Meera", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	coupon := &entity.Coupon{
		SalonID:         env.salon.ID,
		Name:            "Lapsed",
		CouponCode:      "OLD20",
		DiscountType:    enum.DiscountPercent,
		DiscountPercent: 20,
		StartDate:       time.Now().AddDate(0, -2, 0),
		EndDate:         time.Now().AddDate(0, -1, 0),
		Status:          enum.StatusActive,
	}
	require.NoError(t, env.db.Create(coupon).Error)

	payment, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCash,
		CouponID:      &coupon.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), payment.CouponDiscount)
	assert.Nil(t, payment.Payment.CouponID)
	assert.Equal(t, int64(30000), payment.FinalTotal)
}

func TestSettleRejectsSecondSettlement(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Facial", 40000)
	staff := env.createStaff(t, "Meera", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	_, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCash,
	})
	require.NoError(t, err)

	_, err = env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCard,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestSettleRejectsNegativeAmounts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Facial", 40000)
	staff := env.createStaff(t, "Meera", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})
	env.checkOut(t, appointment.ID)

	_, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID:      appointment.ID,
		PaymentMethod:      enum.MethodCash,
		AdditionalDiscount: -100,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSettleUnknownAppointment(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Facial", 40000)
	staff := env.createStaff(t, "Meera", nil)
	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: svc.ID, StaffID: staff.ID}})

	require.NoError(t, env.db.Unscoped().Delete(&entity.Appointment{}, "id = ?", appointment.ID).Error)

	_, err := env.settlement.Settle(env.ctx, &SettleInput{
		AppointmentID: appointment.ID,
		PaymentMethod: enum.MethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
