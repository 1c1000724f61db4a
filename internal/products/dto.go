package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/pagination"
)

// ProductDTO is the catalog payload returned to clients. Prices are fixed two-decimal strings.
type ProductDTO struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Model           string    `json:"model"`
	SerialNumber    *string   `json:"serial_number,omitempty"`
	Description     string    `json:"description"`
	QuantityInStock int       `json:"quantity_in_stock"`
	Price           string    `json:"price"`
	WarrantyStatus  string    `json:"warranty_status"`
	DistributorInfo string    `json:"distributor_info"`
	CategoryID      *int64    `json:"category_id,omitempty"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductListResult is one page of products.
type ProductListResult struct {
	Products   []ProductDTO    `json:"products"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Model           string          `json:"model" validate:"omitempty,max=255"`
	SerialNumber    *string         `json:"serial_number" validate:"omitempty,max=255"`
	Description     string          `json:"description"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"gte=0"`
	Price           decimal.Decimal `json:"price"`
	WarrantyStatus  string          `json:"warranty_status" validate:"omitempty,max=64"`
	DistributorInfo string          `json:"distributor_info"`
	CategoryID      *int64          `json:"category_id" validate:"omitempty,gt=0"`
	ImageURL        string          `json:"image_url" validate:"omitempty,max=2048"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Model           *string          `json:"model" validate:"omitempty,max=255"`
	SerialNumber    *string          `json:"serial_number" validate:"omitempty,max=255"`
	Description     *string          `json:"description"`
	QuantityInStock *int             `json:"quantity_in_stock" validate:"omitempty,gte=0"`
	Price           *decimal.Decimal `json:"price"`
	WarrantyStatus  *string          `json:"warranty_status" validate:"omitempty,max=64"`
	DistributorInfo *string          `json:"distributor_info"`
	CategoryID      *int64           `json:"category_id" validate:"omitempty,gt=0"`
	ImageURL        *string          `json:"image_url" validate:"omitempty,max=2048"`
}

// ListProductsInput captures list query parameters.
type ListProductsInput struct {
	Page       int
	Limit      int
	CategoryID *int64
}

func FromModel(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Model:           p.Model,
		SerialNumber:    p.SerialNumber,
		Description:     p.Description,
		QuantityInStock: p.QuantityInStock,
		Price:           p.Price.StringFixed(2),
		WarrantyStatus:  p.WarrantyStatus,
		DistributorInfo: p.DistributorInfo,
		CategoryID:      p.CategoryID,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (in CreateProductInput) toModel() *models.Product {
	warranty := in.WarrantyStatus
	if warranty == "" {
		warranty = "none"
	}
	return &models.Product{
		Name:            in.Name,
		Model:           in.Model,
		SerialNumber:    in.SerialNumber,
		Description:     in.Description,
		QuantityInStock: in.QuantityInStock,
		Price:           in.Price.Round(2),
		WarrantyStatus:  warranty,
		DistributorInfo: in.DistributorInfo,
		CategoryID:      in.CategoryID,
		ImageURL:        in.ImageURL,
	}
}

func (in UpdateProductInput) changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Model != nil {
		changes["model"] = *in.Model
	}
	if in.SerialNumber != nil {
		changes["serial_number"] = *in.SerialNumber
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.QuantityInStock != nil {
		changes["quantity_in_stock"] = *in.QuantityInStock
	}
	if in.Price != nil {
		changes["price"] = in.Price.Round(2)
	}
	if in.WarrantyStatus != nil {
		changes["warranty_status"] = *in.WarrantyStatus
	}
	if in.DistributorInfo != nil {
		changes["distributor_info"] = *in.DistributorInfo
	}
	if in.CategoryID != nil {
		changes["category_id"] = *in.CategoryID
	}
	if in.ImageURL != nil {
		changes["image_url"] = *in.ImageURL
	}
	return changes
}
