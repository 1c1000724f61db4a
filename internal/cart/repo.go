package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
)

// Line is a cart item joined with the product's current name, price and stock.
type Line struct {
	ItemID          int64           `gorm:"column:item_id"`
	ProductID       int64           `gorm:"column:product_id"`
	ProductName     string          `gorm:"column:product_name"`
	Quantity        int             `gorm:"column:quantity"`
	Price           decimal.Decimal `gorm:"column:price"`
	QuantityInStock int             `gorm:"column:quantity_in_stock"`
}

// OwnedItem is a cart item together with the user owning its cart.
type OwnedItem struct {
	models.CartItem
	UserID int64 `gorm:"column:user_id"`
}

// Repository is the cart store.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// GetCartForUser returns the user's cart or gorm.ErrRecordNotFound.
func (r *Repository) GetCartForUser(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// EnsureCart returns the user's cart, creating it on first use.
func (r *Repository) EnsureCart(ctx context.Context, userID int64) (*models.Cart, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&models.Cart{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	return r.GetCartForUser(ctx, userID)
}

// GetLines returns the cart's lines in insertion order.
func (r *Repository) GetLines(ctx context.Context, cartID int64) ([]Line, error) {
	var lines []Line
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.id AS item_id, ci.product_id, p.name AS product_name, ci.quantity, p.price, p.quantity_in_stock").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ClearLines deletes every item in the cart but keeps the cart itself.
func (r *Repository) ClearLines(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// AddOrMerge inserts a line or adds qty to the existing line for the product.
func (r *Repository) AddOrMerge(ctx context.Context, cartID, productID int64, qty int) (*models.CartItem, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).
		Create(&models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}).Error
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := r.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindLine loads an item with the id of the user who owns its cart.
func (r *Repository) FindLine(ctx context.Context, itemID int64) (*OwnedItem, error) {
	var item OwnedItem
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.*, c.user_id").
		Joins("JOIN carts c ON c.id = ci.cart_id").
		Where("ci.id = ?", itemID).
		Take(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets the quantity of a line.
func (r *Repository) UpdateQuantity(ctx context.Context, itemID int64, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", qty).Error
}

// RemoveLine deletes a single line.
func (r *Repository) RemoveLine(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", itemID).Error
}
