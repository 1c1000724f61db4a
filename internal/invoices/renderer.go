package invoices

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/angelmondragon/urbanthreads-backend/internal/orders"
)

// Branding is printed in the invoice header and footer.
type Branding struct {
	CompanyName string
	Tagline     string
}

// Renderer lays out an order as a one-page PDF invoice.
type Renderer struct {
	brand Branding
}

func NewRenderer(brand Branding) *Renderer {
	return &Renderer{brand: brand}
}

const (
	colProduct = 90.0
	colQty     = 25.0
	colPrice   = 35.0
	colTotal   = 35.0
	rowHeight  = 7.0
)

// Render writes the invoice PDF for order to w.
func (r *Renderer) Render(w io.Writer, order *orders.OrderDTO) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, tr(r.brand.CompanyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(r.brand.Tagline), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order Number: #%d", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+order.CreatedAt.UTC().Format(time.DateOnly), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+strings.ToUpper(string(order.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Shipping Address:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	address := order.Address
	if strings.TrimSpace(address) == "" {
		address = "-"
	}
	pdf.MultiCell(0, 5, tr(address), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colProduct, rowHeight, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, rowHeight, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPrice, rowHeight, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, rowHeight, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range order.Lines {
		pdf.CellFormat(colProduct, rowHeight, tr(line.ProductName), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, rowHeight, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, rowHeight, "$"+line.UnitPrice, "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, rowHeight, "$"+line.LineTotal, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colProduct+colQty, rowHeight+2, "", "T", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, rowHeight+2, "TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, rowHeight+2, "$"+order.Total, "T", 1, "R", false, 0, "")

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Thank you for shopping with %s!", r.brand.CompanyName)), "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout invoice: %w", err)
	}
	return pdf.Output(w)
}
