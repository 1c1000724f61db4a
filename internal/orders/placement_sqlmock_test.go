package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

// The stock check must live in the UPDATE itself; no read of the product row
// may precede it.
const guardedDecrementSQL = `UPDATE "products" SET "quantity_in_stock"\s*=\s*quantity_in_stock - \$1 WHERE \(?id = \$2 AND quantity_in_stock >= \$3\)?`

func newMockPlacement(t *testing.T) (PlacementService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := db.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	client := db.NewFromGorm(conn)

	svc, err := NewPlacementService(PlacementParams{
		Transactor: client,
		Stores:     BindStores(NewRepository(conn), cart.NewRepository(conn), product.NewRepository(conn)),
	})
	require.NoError(t, err)
	return svc, mock
}

func expectCartWithOneLine(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(10, 1, time.Now()))
	mock.ExpectQuery(`FROM cart_items ci`).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "product_id", "product_name", "quantity", "price", "quantity_in_stock"}).
			AddRow(1, 5, "Shirt", 2, "50.00", 3))
}

func TestPlaceOrderRollsBackOnStorageFailure(t *testing.T) {
	svc, mock := newMockPlacement(t)
	expectCartWithOneLine(mock)
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{UserID: 1})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRollsBackWhenGuardedDecrementMisses(t *testing.T) {
	svc, mock := newMockPlacement(t)
	expectCartWithOneLine(mock)
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery(`INSERT INTO "order_items"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(guardedDecrementSQL).WithArgs(2, 5, 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{UserID: 1})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderBeginFailureIsDependencyError(t *testing.T) {
	svc, mock := newMockPlacement(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{UserID: 1})
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
