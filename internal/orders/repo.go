package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
)

// LineRecord is an order item joined with its product name.
type LineRecord struct {
	ID          int64           `gorm:"column:id"`
	OrderID     int64           `gorm:"column:order_id"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int             `gorm:"column:quantity"`
	Price       decimal.Decimal `gorm:"column:price"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds an order repository to db.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListForUser returns the user's orders newest first.
func (r *repository) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListLines loads the lines of every listed order in one query.
func (r *repository) ListLines(ctx context.Context, orderIDs []int64) ([]LineRecord, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var lines []LineRecord
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("oi.id, oi.order_id, oi.product_id, COALESCE(p.name, '') AS product_name, oi.quantity, oi.price").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id IN ?", orderIDs).
		Order("oi.order_id ASC").
		Order("oi.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindForUser loads an order only when userID owns it.
func (r *repository) FindForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) SetInvoicePDF(ctx context.Context, orderID int64, filename string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("invoice_pdf", filename).Error
}
