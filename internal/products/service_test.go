package product

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/dbtest"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateAndPartialUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:            "Wool Scarf",
		QuantityInStock: 7,
		Price:           decimal.RequireFromString("19.999"),
	})
	require.NoError(t, err)
	require.Equal(t, "20.00", created.Price)
	require.Equal(t, "none", created.WarrantyStatus)

	name := "Cashmere Scarf"
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Cashmere Scarf", updated.Name)
	require.Equal(t, 7, updated.QuantityInStock)
	require.Equal(t, "20.00", updated.Price)
}

func TestServiceRejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Gift", Price: decimal.NewFromInt(-1)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestServiceMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, 42)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	name := "ghost"
	_, err = svc.UpdateProduct(ctx, 42, UpdateProductInput{Name: &name})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteProduct(ctx, 42)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceDeleteProductInUseByOrders(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Boots", QuantityInStock: 1, Price: decimal.NewFromInt(120)})
	require.NoError(t, err)

	require.NoError(t, repo.db.Create(&models.OrderItem{OrderID: 1, ProductID: created.ID, Quantity: 1, Price: decimal.NewFromInt(120)}).Error)

	err = svc.DeleteProduct(ctx, created.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
}

func TestServiceListDefaultsPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Tee", QuantityInStock: 1, Price: decimal.NewFromInt(10)})
		require.NoError(t, err)
	}

	result, err := svc.ListProducts(ctx, ListProductsInput{Limit: 500})
	require.NoError(t, err)
	require.Equal(t, 1, result.Pagination.Page)
	require.Equal(t, 100, result.Pagination.Limit)
	require.Len(t, result.Products, 12)

	result, err = svc.ListProducts(ctx, ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, result.Products, 10)
	require.Equal(t, 2, result.Pagination.TotalPages)
}

func TestServiceExportProductsWorkbook(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	category := &models.Category{Name: "Shoes"}
	require.NoError(t, repo.db.Create(category).Error)
	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Loafers", QuantityInStock: 4, Price: decimal.RequireFromString("75.5"), CategoryID: &category.ID})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportProducts(ctx, &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	require.Equal(t, exportSheetName, sheet.Name)
	require.Len(t, sheet.Rows, 2)

	data := sheet.Rows[1].Cells
	require.Equal(t, "Loafers", data[1].String())
	require.Equal(t, "75.50", data[6].String())
	require.Equal(t, "Shoes", data[9].String())
}
