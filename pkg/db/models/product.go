package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. QuantityInStock never drops below zero; the
// only writers are admin updates and the guarded decrement in order placement.
type Product struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string          `gorm:"column:name;not null"`
	Model           string          `gorm:"column:model;not null;default:''"`
	SerialNumber    *string         `gorm:"column:serial_number;uniqueIndex"`
	Description     string          `gorm:"column:description;not null;default:''"`
	QuantityInStock int             `gorm:"column:quantity_in_stock;not null;default:0;check:quantity_in_stock >= 0"`
	Price           decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	WarrantyStatus  string          `gorm:"column:warranty_status;not null;default:'none'"`
	DistributorInfo string          `gorm:"column:distributor_info;not null;default:''"`
	CategoryID      *int64          `gorm:"column:category_id;index"`
	ImageURL        string          `gorm:"column:image_url;not null;default:''"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
