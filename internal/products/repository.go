package product

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/pagination"
)

// ListFilter narrows product listings.
type ListFilter struct {
	CategoryID *int64
}

// ExportRow is a product joined with its category name.
type ExportRow struct {
	models.Product
	CategoryName *string `gorm:"column:category_name"`
}

// Repository is the catalog store. Stock is only ever lowered through
// GuardedDecrementStock.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetPrice returns the current unit price of a product. The cart uses it to
// check a product exists before adding it.
func (r *Repository) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Select("id", "price").First(&product, "id = ?", id).Error; err != nil {
		return decimal.Zero, err
	}
	return product.Price, nil
}

// GuardedDecrementStock lowers stock by qty only when enough units remain.
// Zero rows affected means the product is missing or short on stock.
func (r *Repository) GuardedDecrementStock(ctx context.Context, id int64, qty int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity_in_stock >= ?", id, qty).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", qty))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update applies column changes and returns the number of matched rows.
func (r *Repository) Update(ctx context.Context, id int64, changes map[string]any) (int64, error) {
	if len(changes) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error
		return count, err
	}
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(changes)
	return res.RowsAffected, res.Error
}

// Delete removes a product and reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// CountOrderReferences reports how many order lines point at the product.
func (r *Repository) CountOrderReferences(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}

// List returns one page of products ordered by id plus the total match count.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error) {
	page = page.Normalize()
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Product{})
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := scoped().Order("id ASC").Limit(page.Limit).Offset(page.Offset()).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListForExport returns every product with its category name.
func (r *Repository) ListForExport(ctx context.Context) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
