package orders

import (
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/dbtest"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
	"github.com/angelmondragon/urbanthreads-backend/pkg/metrics"
)

type fixture struct {
	client    *db.Client
	carts     *cart.Repository
	catalog   *product.Repository
	orders    Repository
	placement PlacementService
	query     QueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := dbtest.Open(t)
	f := &fixture{
		client:  client,
		carts:   cart.NewRepository(client.DB()),
		catalog: product.NewRepository(client.DB()),
		orders:  NewRepository(client.DB()),
	}

	placement, err := NewPlacementService(PlacementParams{
		Transactor: client,
		Stores:     BindStores(f.orders, f.carts, f.catalog),
		Logger:     logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard}),
		Metrics:    metrics.NewOrderMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	f.placement = placement

	query, err := NewQueryService(f.orders)
	require.NoError(t, err)
	f.query = query
	return f
}

func (f *fixture) seedProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.RequireFromString(price), QuantityInStock: stock, WarrantyStatus: "none"}
	dbtest.MustCreate(t, f.client, p)
	return p
}

func (f *fixture) addToCart(t *testing.T, userID, productID int64, qty int) {
	t.Helper()
	ctx := context.Background()
	c, err := f.carts.EnsureCart(ctx, userID)
	require.NoError(t, err)
	_, err = f.carts.AddOrMerge(ctx, c.ID, productID, qty)
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, productID int64) int {
	t.Helper()
	p, err := f.catalog.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.QuantityInStock
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.client.DB().Model(model).Count(&n).Error)
	return n
}

func (f *fixture) cartLines(t *testing.T, userID int64) []cart.Line {
	t.Helper()
	c, err := f.carts.GetCartForUser(context.Background(), userID)
	require.NoError(t, err)
	lines, err := f.carts.GetLines(context.Background(), c.ID)
	require.NoError(t, err)
	return lines
}
