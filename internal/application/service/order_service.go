package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
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
)

// OrderService handles walk-in and appointment product sales
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	salonRepo    repository.SalonRepository
	branchRepo   repository.BranchRepository
	renderer     invoice.Renderer
	store        invoice.Store
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	salonRepo repository.SalonRepository,
	branchRepo repository.BranchRepository,
	renderer invoice.Renderer,
	store invoice.Store,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		salonRepo:    salonRepo,
		branchRepo:   branchRepo,
		renderer:     renderer,
		store:        store,
	}
}

// OrderLineInput represents a requested product line
type OrderLineInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	BranchID      uuid.UUID
	CustomerID    uuid.UUID
	PaymentMethod enum.PaymentMethod
	Lines         []OrderLineInput
}

// ResolvedLine is a priced order line after catalog validation
type ResolvedLine struct {
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	TotalPrice  int64
}

// ResolveLines validates the requested lines against the current catalog and
// prices them: variant price when a variant is named, product price otherwise.
func (s *OrderService) ResolveLines(ctx context.Context, lines []OrderLineInput) ([]ResolvedLine, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("At least one product line is required")
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	resolved := make([]ResolvedLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Product quantity must be a positive integer")
		}

		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}

		unitPrice := product.Price
		if line.VariantID != nil {
			variant := product.FindVariant(*line.VariantID)
			if variant == nil {
				return nil, apperror.NewBadRequestError(
					fmt.Sprintf("Variant %s does not belong to product %s", line.VariantID, product.Name))
			}
			unitPrice = variant.Price
		}

		resolved = append(resolved, ResolvedLine{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  unitPrice * int64(line.Quantity),
		})
	}
	return resolved, nil
}

// CreateOrder re-validates all lines against the catalog, deducts stock and
// persists the order as one unit of work, then renders the PDF invoice.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	salonID, ok := infraRepo.GetSalonID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Salon context required")
	}

	if !input.PaymentMethod.IsValidOrderMethod() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	resolved, err := s.ResolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	var totalPrice int64
	orderLines := make([]entity.OrderLine, 0, len(resolved))
	for _, line := range resolved {
		totalPrice += line.TotalPrice
		orderLines = append(orderLines, entity.OrderLine{
			ProductID:  line.ProductID,
			VariantID:  line.VariantID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}

	order := &entity.Order{
		SalonID:       salonID,
		BranchID:      input.BranchID,
		CustomerID:    input.CustomerID,
		TotalPrice:    totalPrice,
		PaymentMethod: input.PaymentMethod,
		Lines:         orderLines,
	}

	// Retry on order code collisions; the random suffix is only 4 digits.
	for attempt := 0; ; attempt++ {
		order.OrderCode = generateOrderCode()
		err = s.orderRepo.CreateWithStockDeduction(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperror.NewInsufficientStockError(err.Error())
		}
		if isUniqueViolation(err) && attempt < 2 {
			continue
		}
		return nil, apperror.NewInternalError(err)
	}

	if url, renderErr := s.renderInvoice(ctx, order, customer, branch, resolved); renderErr != nil {
		logger.L.WithError(renderErr).WithField("order_code", order.OrderCode).
			Error("failed to render order invoice")
	} else {
		order.InvoicePDFURL = url
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, apperror.NewInternalError(err)
		}
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *OrderService) renderInvoice(ctx context.Context, order *entity.Order, customer *entity.Customer, branch *entity.Branch, lines []ResolvedLine) (string, error) {
	salon, err := s.salonRepo.GetByID(ctx, order.SalonID)
	if err != nil {
		return "", err
	}

	inv := invoice.OrderInvoice{
		OrderCode:     order.OrderCode,
		CustomerName:  customer.FullName,
		CustomerPhone: customer.PhoneNumber,
		PaymentMethod: string(order.PaymentMethod),
		CreatedAt:     time.Now(),
		TotalPrice:    float64(order.TotalPrice) / 100,
	}
	if salon != nil {
		inv.Header = invoice.Header{
			SalonName:  salon.SalonName,
			BranchName: branch.Name,
			Address:    branch.Address,
			Phone:      branch.ContactNumber,
			Email:      branch.ContactEmail,
		}
	}
	for _, line := range lines {
		inv.Lines = append(inv.Lines, invoice.LineItem{
			Name:      line.ProductName,
			Quantity:  line.Quantity,
			UnitPrice: float64(line.UnitPrice) / 100,
			Total:     float64(line.TotalPrice) / 100,
		})
	}

	data, err := s.renderer.RenderOrder(inv)
	if err != nil {
		return "", err
	}
	return s.store.Save(invoice.OrderFileName(order.OrderCode), data)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrder re-prices the order against the current catalog. Old line
// quantities are returned to stock and the new lines deducted in one
// transaction, so the stock ledger stays consistent with the order.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, lines []OrderLineInput, method enum.PaymentMethod) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if method != "" {
		if !method.IsValidOrderMethod() {
			return nil, apperror.NewBadRequestError("Invalid payment method")
		}
		order.PaymentMethod = method
	}

	if len(lines) > 0 {
		resolved, err := s.ResolveLines(ctx, lines)
		if err != nil {
			return nil, err
		}

		var totalPrice int64
		newLines := make([]entity.OrderLine, 0, len(resolved))
		for _, line := range resolved {
			totalPrice += line.TotalPrice
			newLines = append(newLines, entity.OrderLine{
				ProductID:  line.ProductID,
				VariantID:  line.VariantID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			})
		}

		oldLines := order.Lines
		order.TotalPrice = totalPrice
		if err := s.orderRepo.ReplaceLinesWithStockAdjustment(ctx, order, oldLines, newLines); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, apperror.NewInsufficientStockError(err.Error())
			}
			return nil, apperror.NewInternalError(err)
		}
	} else if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// DeleteOrder removes an order and returns its line quantities to stock
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.DeleteWithStockRestore(ctx, order)
}

func generateOrderCode() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), rand.IntN(10000))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
