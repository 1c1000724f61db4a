package product

import (
	"context"
	"io"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/pagination"
)

// Service exposes catalog browsing and product management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
	ExportProducts(ctx context.Context, w io.Writer) error
}

type service struct {
	repo *Repository
}

// NewService builds a product service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	page := pagination.Params{Page: input.Page, Limit: input.Limit}.Normalize()
	rows, total, err := s.repo.List(ctx, ListFilter{CategoryID: input.CategoryID}, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	products := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, FromModel(&rows[i]))
	}
	return &ProductListResult{Products: products, Pagination: pagination.NewMeta(page, total)}, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := FromModel(product)
	return &dto, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	model := input.toModel()
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, mapWriteError(err, "create product")
	}
	return s.GetProduct(ctx, model.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	matched, err := s.repo.Update(ctx, id, input.changes())
	if err != nil {
		return nil, mapWriteError(err, "update product")
	}
	if matched == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	refs, err := s.repo.CountOrderReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count order references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "product is referenced by orders")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapWriteError(err, "delete product")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func mapLookupError(err error) error {
	if db.KindOf(err) == db.KindNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
}

func mapWriteError(err error, action string) error {
	if db.KindOf(err) == db.KindConflict {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, action+" conflicts with existing data")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
