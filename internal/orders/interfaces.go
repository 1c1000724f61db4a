package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
)

// Repository defines persistence operations for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	ListForUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListLines(ctx context.Context, orderIDs []int64) ([]LineRecord, error)
	FindForUser(ctx context.Context, userID, orderID int64) (*models.Order, error)
	SetInvoicePDF(ctx context.Context, orderID int64, filename string) error
}

// CartStore is the cart surface order placement consumes.
type CartStore interface {
	GetCartForUser(ctx context.Context, userID int64) (*models.Cart, error)
	GetLines(ctx context.Context, cartID int64) ([]cart.Line, error)
	ClearLines(ctx context.Context, cartID int64) error
}

// CatalogStore is the product surface order placement consumes.
type CatalogStore interface {
	GuardedDecrementStock(ctx context.Context, productID int64, qty int) (int64, error)
}

// TxStores are the stores bound to a single unit of work.
type TxStores struct {
	Orders  Repository
	Cart    CartStore
	Catalog CatalogStore
}

// StoreBinder binds stores to the transaction of a unit of work.
type StoreBinder func(tx *gorm.DB) TxStores

// BindStores builds a StoreBinder from the concrete repositories.
func BindStores(orders Repository, carts *cart.Repository, catalog *product.Repository) StoreBinder {
	return func(tx *gorm.DB) TxStores {
		return TxStores{
			Orders:  orders.WithTx(tx),
			Cart:    carts.WithTx(tx),
			Catalog: catalog.WithTx(tx),
		}
	}
}
