package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
)

// Order is written once per successful placement together with its items.
type Order struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     int64             `gorm:"column:user_id;not null;index:orders_user_created_idx,priority:1"`
	TotalPrice decimal.Decimal   `gorm:"column:total_price;type:decimal(12,2);not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:varchar(20);not null;default:'processing'"`
	Address    string            `gorm:"column:address;not null;default:''"`
	InvoicePDF *string           `gorm:"column:invoice_pdf"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime;index:orders_user_created_idx,priority:2"`
}
