package wishlist

// ItemDTO is a wishlist entry with product details.
type ItemDTO struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	QuantityInStock int    `json:"quantity_in_stock"`
	ImageURL        string `json:"image_url,omitempty"`
}

// WishlistDTO lists the caller's wishlist.
type WishlistDTO struct {
	Items []ItemDTO `json:"items"`
}

// AddItemRequest is the payload to like a product.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (r ItemRecord) toDTO() ItemDTO {
	return ItemDTO{
		ID:              r.ID,
		ProductID:       r.ProductID,
		Name:            r.Name,
		Price:           r.Price.StringFixed(2),
		QuantityInStock: r.QuantityInStock,
		ImageURL:        r.ImageURL,
	}
}
