package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Header carries the salon/branch block printed at the top of every invoice.
type Header struct {
	SalonName  string
	BranchName string
	Address    string
	Phone      string
	Email      string
}

// LineItem is one row of the itemized product table.
type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// OrderInvoice is the data needed to render a product order invoice.
type OrderInvoice struct {
	Header        Header
	OrderCode     string
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	CreatedAt     time.Time
	Lines         []LineItem
	TotalPrice    float64
}

// PaymentInvoice is the data needed to render a settlement invoice.
type PaymentInvoice struct {
	Header             Header
	InvoiceID          string
	CustomerName       string
	CustomerPhone      string
	PaymentMethod      string
	CreatedAt          time.Time
	ServiceAmount      float64
	ProductAmount      float64
	CouponDiscount     float64
	AdditionalDiscount float64
	TaxAmount          float64
	Tips               float64
	FinalTotal         float64
}

// Renderer turns invoice data into a PDF document. Settlement and order logic
// depend only on this interface so they stay testable without a PDF engine.
type Renderer interface {
	RenderOrder(inv OrderInvoice) ([]byte, error)
	RenderPayment(inv PaymentInvoice) ([]byte, error)
}

// Store persists rendered invoices and returns the URL they are served from.
type Store interface {
	Save(fileName string, data []byte) (string, error)
}

// OrderFileName returns the artifact name for an order invoice.
func OrderFileName(orderCode string) string {
	return fmt.Sprintf("invoice-%s.pdf", orderCode)
}

// PaymentFileName returns the artifact name for a settlement invoice.
func PaymentFileName(paymentID string) string {
	return fmt.Sprintf("invoice-%s.pdf", paymentID)
}

// FileStore writes invoices into a local uploads directory served statically.
type FileStore struct {
	Dir     string
	BaseURL string
}

// NewFileStore creates the uploads directory if needed.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &FileStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *FileStore) Save(fileName string, data []byte) (string, error) {
	path := filepath.Join(s.Dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write invoice %s: %w", fileName, err)
	}
	return s.BaseURL + "/" + fileName, nil
}

// Path returns the on-disk location of a stored invoice.
func (s *FileStore) Path(fileName string) string {
	return filepath.Join(s.Dir, fileName)
}
