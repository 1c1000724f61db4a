package wishlist

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
)

// ItemRecord is a wishlist entry joined with its product.
type ItemRecord struct {
	ID              int64           `gorm:"column:id"`
	ProductID       int64           `gorm:"column:product_id"`
	Name            string          `gorm:"column:name"`
	Price           decimal.Decimal `gorm:"column:price"`
	QuantityInStock int             `gorm:"column:quantity_in_stock"`
	ImageURL        string          `gorm:"column:image_url"`
}

// OwnedItem is a wishlist item with the user owning its wishlist.
type OwnedItem struct {
	models.WishlistItem
	UserID int64 `gorm:"column:user_id"`
}

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// EnsureWishlist returns the user's wishlist, creating it when missing.
func (r *Repository) EnsureWishlist(ctx context.Context, userID int64) (*models.Wishlist, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&models.Wishlist{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// ListItems returns the user's wishlist products, most recently added first.
func (r *Repository) ListItems(ctx context.Context, userID int64) ([]ItemRecord, error) {
	var records []ItemRecord
	err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.id, wi.product_id, p.name, p.price, p.quantity_in_stock, p.image_url").
		Joins("JOIN wishlists w ON w.id = wi.wishlist_id").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("w.user_id = ?", userID).
		Order("wi.id DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AddItem inserts a wishlist entry. Duplicates surface as unique violations.
func (r *Repository) AddItem(ctx context.Context, wishlistID, productID int64) (*models.WishlistItem, error) {
	item := &models.WishlistItem{WishlistID: wishlistID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItem loads an item with its owner.
func (r *Repository) FindItem(ctx context.Context, itemID int64) (*OwnedItem, error) {
	var item OwnedItem
	err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.*, w.user_id").
		Joins("JOIN wishlists w ON w.id = wi.wishlist_id").
		Where("wi.id = ?", itemID).
		Take(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a wishlist entry.
func (r *Repository) RemoveItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistItem{}, "id = ?", itemID).Error
}
