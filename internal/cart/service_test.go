package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()), product.NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func TestGetCartWithoutCartIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	cart, err := svc.GetCart(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, "0.00", cart.TotalPrice)
}

func TestGetCartTotalsLines(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shirt := seedProduct(t, client, "Shirt", "50.00", 10)
	socks := seedProduct(t, client, "Socks", "25.00", 10)

	_, err := svc.AddItem(ctx, 1, AddItemRequest{ProductID: shirt.ID, Quantity: 2})
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, 1, AddItemRequest{ProductID: socks.ID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "25.00", item.LineTotal)

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.Equal(t, "100.00", cart.Items[0].LineTotal)
	require.Equal(t, "125.00", cart.TotalPrice)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), 1, AddItemRequest{ProductID: 404, Quantity: 1})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateAndRemoveEnforceOwnership(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	jeans := seedProduct(t, client, "Jeans", "60.00", 5)

	item, err := svc.AddItem(ctx, 1, AddItemRequest{ProductID: jeans.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, 2, item.ID, UpdateItemRequest{Quantity: 3})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	err = svc.RemoveItem(ctx, 2, item.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	updated, err := svc.UpdateItem(ctx, 1, item.ID, UpdateItemRequest{Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)
	require.Equal(t, "180.00", updated.LineTotal)

	require.NoError(t, svc.RemoveItem(ctx, 1, item.ID))
	err = svc.RemoveItem(ctx, 1, item.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateItemRejectsZeroQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateItem(context.Background(), 1, 1, UpdateItemRequest{Quantity: 0})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

type priceStub struct {
	calls []int64
	err   error
}

func (p *priceStub) GetPrice(_ context.Context, id int64) (decimal.Decimal, error) {
	p.calls = append(p.calls, id)
	return decimal.RequireFromString("10.00"), p.err
}

func TestAddItemChecksProductThroughPriceLookup(t *testing.T) {
	client := dbtest.Open(t)
	prices := &priceStub{err: errors.New("catalog offline")}
	svc, err := NewService(NewRepository(client.DB()), prices)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), 1, AddItemRequest{ProductID: 7, Quantity: 1})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal), "got %v", err)
	require.Equal(t, []int64{7}, prices.calls)

	_, err = NewRepository(client.DB()).GetCartForUser(context.Background(), 1)
	require.Error(t, err, "no cart is created when the product lookup fails")
}
