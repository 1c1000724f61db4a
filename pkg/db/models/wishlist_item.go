package models

import "time"

// WishlistItem links a wishlist to a liked product.
type WishlistItem struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WishlistID int64     `gorm:"column:wishlist_id;not null;uniqueIndex:wishlist_items_wishlist_product_key"`
	ProductID  int64     `gorm:"column:product_id;not null;index;uniqueIndex:wishlist_items_wishlist_product_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
