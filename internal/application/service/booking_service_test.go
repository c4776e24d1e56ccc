package service

import (
	"context"
	"testing"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointmentTotalsAreConsistent(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	cut := env.createService(t, "Hair Cut", 35000)
	staff := env.createStaff(t, "Meera", nil)
	product := env.createProduct(t, "Argan Oil", 45000, 10)

	appointment, err := env.booking.CreateAppointment(env.ctx, &CreateAppointmentInput{
		CustomerID:      env.customer.ID,
		BranchID:        env.branch.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "11:00",
		Services: []ServiceLineInput{
			{ServiceID: spa.ID, StaffID: staff.ID},
			{ServiceID: cut.ID, StaffID: staff.ID},
		},
		Products: []OrderLineInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(135000), appointment.ServiceTotal)
	assert.Equal(t, int64(90000), appointment.ProductTotal)
	assert.Equal(t, appointment.ServiceTotal+appointment.ProductTotal, appointment.TotalPayment)
	assert.Equal(t, appointment.ServiceAmountSum(), appointment.ServiceTotal)
	assert.Equal(t, appointment.ProductTotalSum(), appointment.ProductTotal)

	// Product lines also flow into the order pipeline and deduct stock.
	var refreshed entity.Product
	require.NoError(t, env.db.First(&refreshed, "id = ?", product.ID).Error)
	assert.Equal(t, 8, refreshed.Stock)

	var orderCount int64
	require.NoError(t, env.db.Model(&entity.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestCreateAppointmentConsumesEntitlement(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)

	pkg := &entity.CustomerPackage{
		SalonID:     env.salon.ID,
		CustomerID:  env.customer.ID,
		PackageName: "Spa Pack",
		StartDate:   time.Now().AddDate(0, 0, -5),
		EndDate:     time.Now().AddDate(0, 1, 0),
		Items: []entity.CustomerPackageItem{
			{ServiceID: spa.ID, Quantity: 2},
		},
	}
	require.NoError(t, env.db.Create(pkg).Error)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	require.Len(t, appointment.Services, 1)
	assert.True(t, appointment.Services[0].UsedPackage)
	assert.Equal(t, int64(0), appointment.Services[0].Amount)
	assert.Equal(t, int64(0), appointment.TotalPayment)

	var item entity.CustomerPackageItem
	require.NoError(t, env.db.First(&item, "package_id = ?", pkg.ID).Error)
	assert.Equal(t, 1, item.Quantity)
}

func TestCreateAppointmentExhaustedEntitlementFallsBackToCatalog(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)

	pkg := &entity.CustomerPackage{
		SalonID:     env.salon.ID,
		CustomerID:  env.customer.ID,
		PackageName: "Spa Pack",
		StartDate:   time.Now().AddDate(0, 0, -5),
		EndDate:     time.Now().AddDate(0, 1, 0),
		Items: []entity.CustomerPackageItem{
			{ServiceID: spa.ID, Quantity: 0},
		},
	}
	require.NoError(t, env.db.Create(pkg).Error)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	require.Len(t, appointment.Services, 1)
	assert.False(t, appointment.Services[0].UsedPackage)
	assert.Equal(t, int64(100000), appointment.Services[0].Amount)
}

func TestCreateAppointmentExpiredPackageIgnored(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)

	pkg := &entity.CustomerPackage{
		SalonID:     env.salon.ID,
		CustomerID:  env.customer.ID,
		PackageName: "Lapsed Pack",
		StartDate:   time.Now().AddDate(0, -3, 0),
		EndDate:     time.Now().AddDate(0, -1, 0),
		Items: []entity.CustomerPackageItem{
			{ServiceID: spa.ID, Quantity: 5},
		},
	}
	require.NoError(t, env.db.Create(pkg).Error)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	require.Len(t, appointment.Services, 1)
	assert.False(t, appointment.Services[0].UsedPackage)

	var item entity.CustomerPackageItem
	require.NoError(t, env.db.First(&item, "package_id = ?", pkg.ID).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestCreateAppointmentRequiresLines(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.booking.CreateAppointment(env.ctx, &CreateAppointmentInput{
		CustomerID:      env.customer.ID,
		BranchID:        env.branch.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateAppointmentUnwindsOnOrderFailure(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)
	product := env.createProduct(t, "Argan Oil", 45000, 1)

	pkg := &entity.CustomerPackage{
		SalonID:     env.salon.ID,
		CustomerID:  env.customer.ID,
		PackageName: "Spa Pack",
		StartDate:   time.Now().AddDate(0, 0, -5),
		EndDate:     time.Now().AddDate(0, 1, 0),
		Items: []entity.CustomerPackageItem{
			{ServiceID: spa.ID, Quantity: 1},
		},
	}
	require.NoError(t, env.db.Create(pkg).Error)

	_, err := env.booking.CreateAppointment(env.ctx, &CreateAppointmentInput{
		CustomerID:      env.customer.ID,
		BranchID:        env.branch.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "10:00",
		Services:        []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}},
		Products:        []OrderLineInput{{ProductID: product.ID, Quantity: 3}},
	})
	require.Error(t, err)

	// Appointment is unwound and the consumed entitlement restored.
	var count int64
	require.NoError(t, env.db.Model(&entity.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var item entity.CustomerPackageItem
	require.NoError(t, env.db.First(&item, "package_id = ?", pkg.ID).Error)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateAppointmentRepricesLines(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	cut := env.createService(t, "Hair Cut", 35000)
	staff := env.createStaff(t, "Meera", nil)

	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	notes := "prefers window seat"
	updated, err := env.booking.UpdateAppointment(env.ctx, appointment.ID, &UpdateAppointmentInput{
		Notes:    &notes,
		Services: []ServiceLineInput{{ServiceID: cut.ID, StaffID: staff.ID}},
	})
	require.NoError(t, err)

	assert.Equal(t, "prefers window seat", updated.Notes)
	assert.Equal(t, int64(35000), updated.ServiceTotal)
	assert.Equal(t, int64(35000), updated.TotalPayment)
	require.Len(t, updated.Services, 1)
	assert.Equal(t, cut.ID, updated.Services[0].ServiceID)
}

func TestPatchStatusValidatesValues(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)
	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	bad := enum.AppointmentStatus("archived")
	_, err := env.booking.PatchStatus(env.ctx, appointment.ID, &bad, nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = env.booking.PatchStatus(env.ctx, appointment.ID, nil, nil)
	require.Error(t, err)

	good := enum.AppointmentCheckIn
	patched, err := env.booking.PatchStatus(env.ctx, appointment.ID, &good, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.AppointmentCheckIn, patched.Status)
}

func TestListAppointmentsFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)

	first := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})
	env.checkOut(t, first.ID)

	status := enum.AppointmentCheckOut
	result, err := env.booking.ListAppointments(env.ctx, &repository.AppointmentFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	spa := env.createService(t, "Hair Spa", 100000)
	staff := env.createStaff(t, "Meera", nil)
	appointment := env.bookAppointment(t, []ServiceLineInput{{ServiceID: spa.ID, StaffID: staff.ID}})

	other := &entity.Salon{SalonName: "Rival Spa"}
	require.NoError(t, env.db.Create(other).Error)

	otherCtx := infraRepo.WithSalon(context.Background(), other.ID)
	got, err := env.booking.GetAppointment(otherCtx, appointment.ID)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
