package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

type countingRepo struct {
	Repository
	lineQueries int
}

func (c *countingRepo) ListLines(ctx context.Context, ids []int64) ([]LineRecord, error) {
	c.lineQueries++
	return c.Repository.ListLines(ctx, ids)
}

func seedOrder(t *testing.T, f *fixture, userID int64, createdAt time.Time, lines ...models.OrderItem) *models.Order {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	order := &models.Order{UserID: userID, TotalPrice: total, Status: enums.OrderStatusProcessing, CreatedAt: createdAt}
	require.NoError(t, f.orders.CreateOrder(context.Background(), order))
	for i := range lines {
		lines[i].OrderID = order.ID
	}
	require.NoError(t, f.orders.CreateItems(context.Background(), lines))
	return order
}

func TestListOrdersNewestFirstWithGroupedLines(t *testing.T) {
	f := newFixture(t)
	tee := f.seedProduct(t, "Tee", "10.00", 10)
	hat := f.seedProduct(t, "Hat", "20.00", 10)
	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	older := seedOrder(t, f, 1, base, models.OrderItem{ProductID: tee.ID, Quantity: 1, Price: tee.Price})
	newer := seedOrder(t, f, 1, base.Add(time.Hour),
		models.OrderItem{ProductID: tee.ID, Quantity: 2, Price: tee.Price},
		models.OrderItem{ProductID: hat.ID, Quantity: 1, Price: hat.Price},
	)
	seedOrder(t, f, 2, base.Add(2*time.Hour), models.OrderItem{ProductID: hat.ID, Quantity: 5, Price: hat.Price})

	counting := &countingRepo{Repository: f.orders}
	svc, err := NewQueryService(counting)
	require.NoError(t, err)

	orders, err := svc.ListOrders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, newer.ID, orders[0].ID)
	require.Equal(t, older.ID, orders[1].ID)
	require.Len(t, orders[0].Lines, 2)
	require.Len(t, orders[1].Lines, 1)
	require.Equal(t, "Hat", orders[0].Lines[1].ProductName)
	require.Equal(t, "40.00", orders[0].Total)
	require.Equal(t, 1, counting.lineQueries)
}

func TestListOrdersEmpty(t *testing.T) {
	f := newFixture(t)

	orders, err := f.query.ListOrders(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	tee := f.seedProduct(t, "Tee", "10.00", 10)
	owned := seedOrder(t, f, 1, time.Now(), models.OrderItem{ProductID: tee.ID, Quantity: 3, Price: tee.Price})

	got, err := f.query.GetOrder(context.Background(), 1, owned.ID)
	require.NoError(t, err)
	require.Equal(t, "30.00", got.Total)
	require.Equal(t, "Tee", got.Lines[0].ProductName)

	_, foreign := f.query.GetOrder(context.Background(), 2, owned.ID)
	_, missing := f.query.GetOrder(context.Background(), 1, owned.ID+1000)
	require.True(t, pkgerrors.IsCode(foreign, pkgerrors.CodeNotFound))
	require.True(t, pkgerrors.IsCode(missing, pkgerrors.CodeNotFound))
	require.Equal(t, pkgerrors.As(missing).Message(), pkgerrors.As(foreign).Message())
}
