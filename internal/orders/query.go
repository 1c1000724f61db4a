package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

// QueryService reads placed orders for their owner.
type QueryService interface {
	ListOrders(ctx context.Context, userID int64) ([]OrderDTO, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*OrderDTO, error)
}

type queryService struct {
	repo Repository
}

// NewQueryService builds the read side over the order repository.
func NewQueryService(repo Repository) (QueryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &queryService{repo: repo}, nil
}

// ListOrders returns the user's orders newest first. Lines for all orders are
// fetched with a single query and grouped in memory.
func (s *queryService) ListOrders(ctx context.Context, userID int64) ([]OrderDTO, error) {
	orders, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	if len(orders) == 0 {
		return []OrderDTO{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	records, err := s.repo.ListLines(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order lines")
	}

	grouped := make(map[int64][]LineRecord, len(orders))
	for _, rec := range records {
		grouped[rec.OrderID] = append(grouped[rec.OrderID], rec)
	}

	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, fromModel(&orders[i], linesFromRecords(grouped[orders[i].ID])))
	}
	return out, nil
}

// GetOrder returns the order only to its owner. Missing and foreign orders
// both yield NOT_FOUND.
func (s *queryService) GetOrder(ctx context.Context, userID, orderID int64) (*OrderDTO, error) {
	order, err := s.repo.FindForUser(ctx, userID, orderID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	records, err := s.repo.ListLines(ctx, []int64{order.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order lines")
	}
	dto := fromModel(order, linesFromRecords(records))
	return &dto, nil
}
