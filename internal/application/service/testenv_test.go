package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/invoice"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	ctx      context.Context
	salon    *entity.Salon
	branch   *entity.Branch
	customer *entity.Customer

	orders     *OrderService
	booking    *BookingService
	settlement *SettlementService
	earnings   *EarningService
}

var testDBSeq int

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.Salon{},
		&entity.Branch{},
		&entity.Customer{},
		&entity.Staff{},
		&entity.Service{},
		&entity.Product{},
		&entity.ProductVariant{},
		&entity.RevenueCommission{},
		&entity.CommissionSlot{},
		&entity.Coupon{},
		&entity.Tax{},
		&entity.CustomerPackage{},
		&entity.CustomerPackageItem{},
		&entity.Appointment{},
		&entity.AppointmentService{},
		&entity.AppointmentProduct{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.Payment{},
		&entity.StaffEarning{},
		&entity.StaffPayment{},
	)
	require.NoError(t, err)

	salon := &entity.Salon{SalonName: "Glow Studio", Address: "12 Rose Lane", ContactNumber: "9876543210"}
	require.NoError(t, db.Create(salon).Error)

	branch := &entity.Branch{SalonID: salon.ID, Name: "Downtown", Address: "12 Rose Lane"}
	require.NoError(t, db.Create(branch).Error)

	customer := &entity.Customer{SalonID: salon.ID, FullName: "Asha Verma", PhoneNumber: "9000000001"}
	require.NoError(t, db.Create(customer).Error)

	store, err := invoice.NewFileStore(t.TempDir(), "/api/uploads")
	require.NoError(t, err)
	renderer := invoice.NewPDFRenderer("Rs.")

	salonRepo := infraRepo.NewSalonRepository(db)
	branchRepo := infraRepo.NewBranchRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	couponRepo := infraRepo.NewCouponRepository(db)
	taxRepo := infraRepo.NewTaxRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	serviceRepo := infraRepo.NewServiceRepository(db)
	staffRepo := infraRepo.NewStaffRepository(db)
	commissionRepo := infraRepo.NewRevenueCommissionRepository(db)
	packageRepo := infraRepo.NewCustomerPackageRepository(db)
	appointmentRepo := infraRepo.NewAppointmentRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	earningRepo := infraRepo.NewStaffEarningRepository(db)
	staffPaymentRepo := infraRepo.NewStaffPaymentRepository(db)

	orders := NewOrderService(orderRepo, productRepo, customerRepo, salonRepo, branchRepo, renderer, store)
	booking := NewBookingService(appointmentRepo, serviceRepo, packageRepo, customerRepo, branchRepo, orders)
	settlement := NewSettlementService(paymentRepo, appointmentRepo, couponRepo, taxRepo, customerRepo, salonRepo, branchRepo, renderer, store)
	earnings := NewEarningService(appointmentRepo, paymentRepo, staffRepo, commissionRepo, earningRepo, staffPaymentRepo)

	return &testEnv{
		db:         db,
		ctx:        infraRepo.WithSalon(context.Background(), salon.ID),
		salon:      salon,
		branch:     branch,
		customer:   customer,
		orders:     orders,
		booking:    booking,
		settlement: settlement,
		earnings:   earnings,
	}
}

func (e *testEnv) createService(t *testing.T, name string, priceCents int64) *entity.Service {
	t.Helper()
	svc := &entity.Service{
		SalonID:      e.salon.ID,
		Name:         name,
		RegularPrice: priceCents,
		Status:       enum.StatusActive,
	}
	require.NoError(t, e.db.Create(svc).Error)
	return svc
}

func (e *testEnv) createProduct(t *testing.T, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		SalonID: e.salon.ID,
		Name:    name,
		Price:   priceCents,
		Stock:   stock,
		Status:  enum.StatusActive,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) createStaff(t *testing.T, name string, commissionID *uuid.UUID) *entity.Staff {
	t.Helper()
	staff := &entity.Staff{
		SalonID:      e.salon.ID,
		BranchID:     &e.branch.ID,
		FullName:     name,
		CommissionID: commissionID,
	}
	require.NoError(t, e.db.Create(staff).Error)
	return staff
}

func (e *testEnv) createCommission(t *testing.T, name string, ctype enum.CommissionType, slots map[string]float64) *entity.RevenueCommission {
	t.Helper()
	rule := &entity.RevenueCommission{
		SalonID:        e.salon.ID,
		BranchID:       e.branch.ID,
		CommissionName: name,
		CommissionType: ctype,
	}
	for slot, amount := range slots {
		rule.Slots = append(rule.Slots, entity.CommissionSlot{Slot: slot, Amount: amount})
	}
	require.NoError(t, e.db.Create(rule).Error)
	return rule
}

// bookAppointment creates an appointment through the booking engine with one
// service line per (service, staff) pair.
func (e *testEnv) bookAppointment(t *testing.T, lines []ServiceLineInput) *entity.Appointment {
	t.Helper()
	appointment, err := e.booking.CreateAppointment(e.ctx, &CreateAppointmentInput{
		CustomerID:      e.customer.ID,
		BranchID:        e.branch.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "10:30",
		Status:          enum.AppointmentUpcoming,
		Services:        lines,
	})
	require.NoError(t, err)
	return appointment
}

// checkOut moves an appointment to check-out so it becomes visible to
// settlement and earning aggregation.
func (e *testEnv) checkOut(t *testing.T, appointmentID uuid.UUID) {
	t.Helper()
	status := enum.AppointmentCheckOut
	_, err := e.booking.PatchStatus(e.ctx, appointmentID, &status, nil)
	require.NoError(t, err)
}
