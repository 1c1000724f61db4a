package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
)

// PlaceOrderRequest is the input to order placement.
type PlaceOrderRequest struct {
	UserID  int64
	Address string
}

// PlaceOrderBody is the HTTP payload for placing an order. An empty address is allowed.
type PlaceOrderBody struct {
	Address string `json:"address" validate:"max=1024"`
}

// OrderDTO is the order shape shared by placement, queries and invoices.
type OrderDTO struct {
	ID         int64             `json:"id"`
	Status     enums.OrderStatus `json:"status"`
	Total      string            `json:"total"`
	Address    string            `json:"address"`
	CreatedAt  time.Time         `json:"created_at"`
	InvoicePDF *string           `json:"invoice_pdf,omitempty"`
	Lines      []LineDTO         `json:"lines"`
}

// LineDTO is an order line carrying the unit price captured at placement.
type LineDTO struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`

	unitPrice decimal.Decimal
}

// InsufficientStockDetails is attached to INSUFFICIENT_STOCK errors.
type InsufficientStockDetails struct {
	ProductID int64 `json:"product_id"`
	Requested int   `json:"requested"`
}

// UnitPriceDecimal returns the unit price as a decimal.
func (l LineDTO) UnitPriceDecimal() decimal.Decimal {
	return l.unitPrice
}

// LineTotalDecimal returns unit price times quantity.
func (l LineDTO) LineTotalDecimal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func newLineDTO(id, productID int64, name string, qty int, price decimal.Decimal) LineDTO {
	return LineDTO{
		ID:          id,
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   price.StringFixed(2),
		LineTotal:   price.Mul(decimal.NewFromInt(int64(qty))).StringFixed(2),
		unitPrice:   price,
	}
}

func fromModel(order *models.Order, lines []LineDTO) OrderDTO {
	if lines == nil {
		lines = []LineDTO{}
	}
	return OrderDTO{
		ID:         order.ID,
		Status:     order.Status,
		Total:      order.TotalPrice.StringFixed(2),
		Address:    order.Address,
		CreatedAt:  order.CreatedAt,
		InvoicePDF: order.InvoicePDF,
		Lines:      lines,
	}
}

func linesFromRecords(records []LineRecord) []LineDTO {
	out := make([]LineDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, newLineDTO(rec.ID, rec.ProductID, rec.ProductName, rec.Quantity, rec.Price))
	}
	return out
}
