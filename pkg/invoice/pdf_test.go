package invoice

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		SalonName:  "Glow Studio",
		BranchName: "Downtown",
		Address:    "12 Rose Lane",
		Phone:      "9876543210",
		Email:      "hello@glowstudio.example",
	}
}

func TestRenderOrderProducesPDF(t *testing.T) {
	r := NewPDFRenderer("Rs.")

	data, err := r.RenderOrder(OrderInvoice{
		Header:        testHeader(),
		OrderCode:     "ORD-20260829-0042",
		CustomerName:  "Asha Verma",
		CustomerPhone: "9000000001",
		PaymentMethod: "cash",
		CreatedAt:     time.Now(),
		Lines: []LineItem{
			{Name: "Argan Oil", Quantity: 2, UnitPrice: 450, Total: 900},
			{Name: "Styling Wax", Quantity: 1, UnitPrice: 120, Total: 120},
		},
		TotalPrice: 1020,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderPaymentProducesPDF(t *testing.T) {
	r := NewPDFRenderer("Rs.")

	data, err := r.RenderPayment(PaymentInvoice{
		Header:             testHeader(),
		InvoiceID:          "7f9c3d1e",
		CustomerName:       "Asha Verma",
		PaymentMethod:      "card",
		CreatedAt:          time.Now(),
		ServiceAmount:      1000,
		CouponDiscount:     100,
		AdditionalDiscount: 50,
		TaxAmount:          50,
		Tips:               100,
		FinalTotal:         1000,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "invoice-ORD-20260829-0042.pdf", OrderFileName("ORD-20260829-0042"))
	assert.Equal(t, "invoice-7f9c3d1e.pdf", PaymentFileName("7f9c3d1e"))
}

func TestFileStoreSaveAndPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/api/uploads")
	require.NoError(t, err)

	url, err := store.Save("invoice-test.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/invoice-test.pdf", url)

	written, err := os.ReadFile(filepath.Join(dir, "invoice-test.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), written)
	assert.Equal(t, filepath.Join(dir, "invoice-test.pdf"), store.Path("invoice-test.pdf"))
}
