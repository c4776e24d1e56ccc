package service

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/invoice"
	"github.com/glowdesk/glowdesk-api/pkg/logger"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementService settles appointments: it computes the financial breakdown,
// persists the payment record and renders the settlement invoice.
type SettlementService struct {
	paymentRepo     repository.PaymentRepository
	appointmentRepo repository.AppointmentRepository
	couponRepo      repository.CouponRepository
	taxRepo         repository.TaxRepository
	customerRepo    repository.CustomerRepository
	salonRepo       repository.SalonRepository
	branchRepo      repository.BranchRepository
	renderer        invoice.Renderer
	store           invoice.Store
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	paymentRepo repository.PaymentRepository,
	appointmentRepo repository.AppointmentRepository,
	couponRepo repository.CouponRepository,
	taxRepo repository.TaxRepository,
	customerRepo repository.CustomerRepository,
	salonRepo repository.SalonRepository,
	branchRepo repository.BranchRepository,
	renderer invoice.Renderer,
	store invoice.Store,
) *SettlementService {
	return &SettlementService{
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		couponRepo:      couponRepo,
		taxRepo:         taxRepo,
		customerRepo:    customerRepo,
		salonRepo:       salonRepo,
		branchRepo:      branchRepo,
		renderer:        renderer,
		store:           store,
	}
}

// SettleInput represents the settle payment input
type SettleInput struct {
	AppointmentID      uuid.UUID
	PaymentMethod      enum.PaymentMethod
	CouponID           *uuid.UUID
	TaxID              *uuid.UUID
	AdditionalDiscount int64 // cents
	Tips               int64 // cents
}

// PaymentView is a payment enriched with derived presentation fields
type PaymentView struct {
	entity.Payment
	ServiceCount  int     `json:"service_count"`
	StaffTips     float64 `json:"staff_tips"`
	InvoicePDFURL string  `json:"invoice_pdf_url"`
}

// percentOf computes pct% of an amount in cents, rounded to whole currency
// units to match historical invoice totals.
func percentOf(amountCents int64, pct int) int64 {
	units := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(100))
	return units.Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		Mul(decimal.NewFromInt(100)).
		IntPart()
}

// Settle computes and persists the settlement for an appointment. Inactive or
// out-of-window coupons and inactive taxes are ignored rather than failing
// the settlement.
func (s *SettlementService) Settle(ctx context.Context, input *SettleInput) (*PaymentView, error) {
	salonID, ok := infraRepo.GetSalonID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Salon context required")
	}

	if input.AdditionalDiscount < 0 || input.Tips < 0 {
		return nil, apperror.NewBadRequestError("Discounts and tips must be non-negative")
	}

	appointment, err := s.appointmentRepo.GetWithDetails(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	existing, err := s.paymentRepo.GetByAppointmentID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Appointment is already settled")
	}

	serviceAmount := appointment.ServiceAmountSum()
	productAmount := appointment.ProductTotalSum()
	subTotal := serviceAmount + productAmount

	now := time.Now()

	var couponDiscount int64
	var couponID *uuid.UUID
	if input.CouponID != nil {
		coupon, err := s.couponRepo.GetByID(ctx, *input.CouponID)
		if err != nil {
			return nil, err
		}
		if coupon != nil && coupon.ActiveAt(now) {
			couponID = input.CouponID
			if coupon.DiscountType == enum.DiscountPercent {
				couponDiscount = percentOf(subTotal, coupon.DiscountPercent)
			} else {
				couponDiscount = coupon.DiscountAmount
			}
		}
	}

	// Tax applies to the sub-total before discounts.
	var taxAmount int64
	var taxID *uuid.UUID
	if input.TaxID != nil {
		tax, err := s.taxRepo.GetByID(ctx, *input.TaxID)
		if err != nil {
			return nil, err
		}
		if tax != nil && tax.Status == enum.StatusActive {
			taxID = input.TaxID
			if tax.Type == enum.DiscountPercent {
				taxAmount = percentOf(subTotal, tax.Percent)
			} else {
				taxAmount = tax.Value
			}
		}
	}

	if couponDiscount < 0 {
		couponDiscount = 0
	}
	if taxAmount < 0 {
		taxAmount = 0
	}

	finalTotal := subTotal - couponDiscount - input.AdditionalDiscount + taxAmount + input.Tips

	payment := &entity.Payment{
		SalonID:            salonID,
		BranchID:           appointment.BranchID,
		AppointmentID:      appointment.ID,
		ServiceAmount:      serviceAmount,
		ProductAmount:      productAmount,
		SubTotal:           subTotal,
		CouponID:           couponID,
		CouponDiscount:     couponDiscount,
		AdditionalDiscount: input.AdditionalDiscount,
		TaxID:              taxID,
		TaxAmount:          taxAmount,
		Tips:               input.Tips,
		FinalTotal:         finalTotal,
		PaymentMethod:      input.PaymentMethod,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.NewConflictError("Appointment is already settled")
		}
		return nil, apperror.NewInternalError(err)
	}

	if err := s.appointmentRepo.UpdatePaymentStatus(ctx, appointment.ID, enum.PaymentPaid); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	url, renderErr := s.renderInvoice(ctx, payment, appointment)
	if renderErr != nil {
		logger.L.WithError(renderErr).WithField("payment_id", payment.ID).
			Error("failed to render settlement invoice")
	}

	return s.buildView(payment, appointment, url), nil
}

func (s *SettlementService) buildView(payment *entity.Payment, appointment *entity.Appointment, url string) *PaymentView {
	view := &PaymentView{Payment: *payment, InvoicePDFURL: url}
	if appointment != nil {
		view.ServiceCount = len(appointment.Services)
		staff := appointment.DistinctStaffIDs()
		if payment.Tips > 0 && len(staff) > 0 {
			share := decimal.NewFromInt(payment.Tips).
				Div(decimal.NewFromInt(int64(len(staff)))).
				Div(decimal.NewFromInt(100)).
				Round(2)
			view.StaffTips, _ = share.Float64()
		}
	}
	return view
}

func (s *SettlementService) renderInvoice(ctx context.Context, payment *entity.Payment, appointment *entity.Appointment) (string, error) {
	salon, err := s.salonRepo.GetByID(ctx, payment.SalonID)
	if err != nil {
		return "", err
	}
	branch, err := s.branchRepo.GetByID(ctx, payment.BranchID)
	if err != nil {
		return "", err
	}
	customer, err := s.customerRepo.GetByID(ctx, appointment.CustomerID)
	if err != nil {
		return "", err
	}

	inv := invoice.PaymentInvoice{
		InvoiceID:          payment.ID.String(),
		PaymentMethod:      string(payment.PaymentMethod),
		CreatedAt:          time.Now(),
		ServiceAmount:      float64(payment.ServiceAmount) / 100,
		ProductAmount:      float64(payment.ProductAmount) / 100,
		CouponDiscount:     float64(payment.CouponDiscount) / 100,
		AdditionalDiscount: float64(payment.AdditionalDiscount) / 100,
		TaxAmount:          float64(payment.TaxAmount) / 100,
		Tips:               float64(payment.Tips) / 100,
		FinalTotal:         float64(payment.FinalTotal) / 100,
	}
	if customer != nil {
		inv.CustomerName = customer.FullName
		inv.CustomerPhone = customer.PhoneNumber
	}
	if salon != nil && branch != nil {
		inv.Header = invoice.Header{
			SalonName:  salon.SalonName,
			BranchName: branch.Name,
			Address:    branch.Address,
			Phone:      branch.ContactNumber,
			Email:      branch.ContactEmail,
		}
	}

	data, err := s.renderer.RenderPayment(inv)
	if err != nil {
		return "", err
	}
	return s.store.Save(invoice.PaymentFileName(payment.ID.String()), data)
}

// GetPayment retrieves a payment with its derived presentation fields
func (s *SettlementService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, payment.AppointmentID)
	if err != nil {
		return nil, err
	}
	return s.buildView(payment, appointment, s.invoiceURL(payment)), nil
}

// ListPayments lists payments enriched with service counts and tip splits
func (s *SettlementService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[PaymentView], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	views := make([]PaymentView, 0, len(payments))
	for i := range payments {
		appointment, err := s.appointmentRepo.GetByID(ctx, payments[i].AppointmentID)
		if err != nil {
			return nil, err
		}
		views = append(views, *s.buildView(&payments[i], appointment, s.invoiceURL(&payments[i])))
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(views, pag), nil
}

// InvoicePath returns the on-disk invoice location for streaming. The store
// must be file-backed for inline delivery.
func (s *SettlementService) InvoicePath(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if payment == nil {
		return "", apperror.NewNotFoundError("Payment")
	}

	fileStore, ok := s.store.(*invoice.FileStore)
	if !ok {
		return "", apperror.NewNotFoundError("Invoice")
	}
	return fileStore.Path(invoice.PaymentFileName(payment.ID.String())), nil
}

func (s *SettlementService) invoiceURL(payment *entity.Payment) string {
	if fileStore, ok := s.store.(*invoice.FileStore); ok {
		return fileStore.BaseURL + "/" + invoice.PaymentFileName(payment.ID.String())
	}
	return ""
}
