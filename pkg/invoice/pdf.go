package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Column X positions of the product table, in mm.
const (
	colProductX   = 15.0
	colQtyX       = 95.0
	colUnitPriceX = 120.0
	colTotalX     = 160.0
	tableRightX   = 195.0
)

// PDFRenderer renders invoices with fpdf. Core fonts are cp1252 only, so the
// currency symbol is configurable rather than hard-coded to a Unicode glyph.
type PDFRenderer struct {
	CurrencySymbol string
}

// NewPDFRenderer returns a renderer with the given currency prefix.
func NewPDFRenderer(currencySymbol string) *PDFRenderer {
	if currencySymbol == "" {
		currencySymbol = "Rs."
	}
	return &PDFRenderer{CurrencySymbol: currencySymbol}
}

func (r *PDFRenderer) money(v float64) string {
	return fmt.Sprintf("%s%.2f", r.CurrencySymbol, v)
}

func (r *PDFRenderer) newDoc(h Header, title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(0, 10, h.SalonName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 7, h.BranchName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, h.Address, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Phone: "+h.Phone, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Email: "+h.Email, "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	doc.Ln(4)
	return doc
}

func metaRow(doc *fpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func summaryRow(doc *fpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	doc.SetFont("Helvetica", style, 10)
	doc.CellFormat(0, 5, fmt.Sprintf("%s: %s", label, value), "", 1, "R", false, 0, "")
}

func footer(doc *fpdf.Fpdf, note string) {
	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 5, note, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "This is a system-generated invoice.", "", 1, "C", false, 0, "")
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderOrder reproduces the order invoice layout: header, metadata, itemized
// product table and a subtotal/total summary.
func (r *PDFRenderer) RenderOrder(inv OrderInvoice) ([]byte, error) {
	doc := r.newDoc(inv.Header, "Invoice")

	metaRow(doc, "Order Code:", inv.OrderCode)
	metaRow(doc, "Customer:", inv.CustomerName)
	metaRow(doc, "Phone:", inv.CustomerPhone)
	metaRow(doc, "Date:", inv.CreatedAt.Format("02 Jan 2006 15:04"))
	metaRow(doc, "Payment Method:", inv.PaymentMethod)
	doc.Ln(4)

	doc.SetFont("Helvetica", "BU", 12)
	doc.CellFormat(0, 6, "Products", "", 1, "L", false, 0, "")
	doc.Ln(2)

	y := doc.GetY()
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(colProductX, y, "Product")
	doc.Text(colQtyX, y, "Qty")
	doc.Text(colUnitPriceX, y, "Unit Price")
	doc.Text(colTotalX, y, "Total")
	doc.Line(colProductX, y+2, tableRightX, y+2)
	doc.SetY(y + 5)

	doc.SetFont("Helvetica", "", 10)
	for _, line := range inv.Lines {
		y = doc.GetY()
		doc.Text(colProductX, y, line.Name)
		doc.Text(colQtyX, y, fmt.Sprintf("%d", line.Quantity))
		doc.Text(colUnitPriceX, y, fmt.Sprintf("%.2f", line.UnitPrice))
		doc.Text(colTotalX, y, fmt.Sprintf("%.2f", line.Total))
		doc.SetY(y + 6)
	}
	if len(inv.Lines) == 0 {
		doc.CellFormat(0, 5, "No products.", "", 1, "L", false, 0, "")
	}

	doc.Ln(6)
	doc.SetFont("Helvetica", "BU", 12)
	doc.CellFormat(0, 6, "Summary", "", 1, "L", false, 0, "")
	doc.Ln(2)
	summaryRow(doc, "Subtotal", r.money(inv.TotalPrice), false)
	summaryRow(doc, "Total Payable", r.money(inv.TotalPrice), true)

	footer(doc, "Thank you for choosing us!")
	return output(doc)
}

// RenderPayment reproduces the settlement invoice layout with the full
// financial breakdown down to the final total.
func (r *PDFRenderer) RenderPayment(inv PaymentInvoice) ([]byte, error) {
	doc := r.newDoc(inv.Header, "Payment Invoice")

	metaRow(doc, "Invoice ID:", inv.InvoiceID)
	metaRow(doc, "Customer:", inv.CustomerName)
	metaRow(doc, "Phone:", inv.CustomerPhone)
	metaRow(doc, "Date:", inv.CreatedAt.Format("02 Jan 2006 15:04"))
	metaRow(doc, "Payment Method:", inv.PaymentMethod)
	doc.Ln(4)

	doc.SetFont("Helvetica", "BU", 12)
	doc.CellFormat(0, 6, "Summary", "", 1, "L", false, 0, "")
	doc.Ln(2)
	summaryRow(doc, "Service Amount", r.money(inv.ServiceAmount), false)
	summaryRow(doc, "Product Amount", r.money(inv.ProductAmount), false)
	summaryRow(doc, "Coupon Discount", r.money(inv.CouponDiscount), false)
	summaryRow(doc, "Additional Discount", r.money(inv.AdditionalDiscount), false)
	summaryRow(doc, "Tax Amount", r.money(inv.TaxAmount), false)
	summaryRow(doc, "Tips", r.money(inv.Tips), false)
	doc.Ln(2)
	summaryRow(doc, "Final Total", r.money(inv.FinalTotal), true)

	footer(doc, "Thank you for your payment!")
	return output(doc)
}
