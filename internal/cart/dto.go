package cart

import (
	"github.com/shopspring/decimal"
)

// ItemDTO is a cart line priced at the product's current price.
type ItemDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// CartDTO is the caller's cart with a decimal total.
type CartDTO struct {
	Items      []ItemDTO `json:"items"`
	TotalPrice string    `json:"total_price"`
}

// AddItemRequest is the payload to add a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateItemRequest sets an absolute quantity on a line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func itemFromLine(line Line) ItemDTO {
	return ItemDTO{
		ID:        line.ItemID,
		ProductID: line.ProductID,
		Name:      line.ProductName,
		Quantity:  line.Quantity,
		UnitPrice: line.Price.StringFixed(2),
		LineTotal: line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).StringFixed(2),
	}
}

// Total sums price times quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
