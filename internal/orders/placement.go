package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
	"github.com/angelmondragon/urbanthreads-backend/pkg/metrics"
)

// PlacementService turns a user's cart into an order.
//
// PlaceOrder is not idempotent: calling it twice with a refilled cart creates
// two orders. Callers that retry must deduplicate themselves, for example with
// an Idempotency-Key at the HTTP layer.
type PlacementService interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error)
}

// PlacementParams groups dependencies for the placement service.
type PlacementParams struct {
	Transactor db.Transactor
	Stores     StoreBinder
	Logger     *logger.Logger
	Metrics    *metrics.OrderMetrics
}

type placementService struct {
	tx      db.Transactor
	stores  StoreBinder
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// NewPlacementService builds the order placement service.
func NewPlacementService(params PlacementParams) (PlacementService, error) {
	if params.Transactor == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store binder is required")
	}
	return &placementService{
		tx:      params.Transactor,
		stores:  params.Stores,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

func (s *placementService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error) {
	started := s.now()
	order, err := s.place(ctx, req)
	s.record(ctx, req, order, err, s.now().Sub(started))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *placementService) place(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error) {
	uow, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "begin order placement")
	}
	defer uow.Rollback()

	stores := s.stores(uow.Tx())

	userCart, err := stores.Cart.GetCartForUser(ctx, req.UserID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, emptyCart()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	lines, err := stores.Cart.GetLines(ctx, userCart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
	}
	if len(lines) == 0 {
		return nil, emptyCart()
	}

	order := &models.Order{
		UserID:     req.UserID,
		TotalPrice: cart.Total(lines),
		Status:     enums.OrderStatusProcessing,
		Address:    req.Address,
	}
	if err := stores.Orders.CreateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	if err := stores.Orders.CreateItems(ctx, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
	}

	for _, line := range lines {
		affected, err := stores.Catalog.GuardedDecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
		}
		if affected == 0 {
			return nil, insufficientStock(line.ProductID, line.Quantity)
		}
	}

	if err := stores.Cart.ClearLines(ctx, userCart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}

	if err := uow.Commit(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "commit order placement")
	}

	dtoLines := make([]LineDTO, 0, len(items))
	for i, item := range items {
		dtoLines = append(dtoLines, newLineDTO(item.ID, item.ProductID, lines[i].ProductName, item.Quantity, item.Price))
	}
	dto := fromModel(order, dtoLines)
	return &dto, nil
}

func (s *placementService) record(ctx context.Context, req PlaceOrderRequest, order *OrderDTO, err error, elapsed time.Duration) {
	outcome := metrics.OutcomePlaced
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeEmptyCart:
		outcome = metrics.OutcomeEmptyCart
	case pkgerrors.CodeInsufficientStock:
		outcome = metrics.OutcomeInsufficientStock
	default:
		if err != nil {
			outcome = metrics.OutcomeError
		}
	}
	s.metrics.ObservePlacement(outcome, elapsed)
	if err == nil {
		s.metrics.ObserveLines(len(order.Lines))
	}

	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithUserID(ctx, req.UserID)
	switch {
	case err == nil:
		logCtx = s.logg.WithFields(logCtx, map[string]any{"order_id": order.ID, "total": order.Total, "lines": len(order.Lines)})
		s.logg.Info(logCtx, "order placed")
	case outcome == metrics.OutcomeError:
		s.logg.Error(logCtx, "order placement failed", err)
	default:
		s.logg.Warn(s.logg.WithField(logCtx, "outcome", outcome), "order placement rejected")
	}
}

func emptyCart() error {
	return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
}

func insufficientStock(productID int64, requested int) error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("insufficient stock for product %d", productID)).
		WithDetails(InsufficientStockDetails{ProductID: productID, Requested: requested})
}
