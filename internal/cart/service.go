package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

// Service exposes cart management for the authenticated user.
type Service interface {
	GetCart(ctx context.Context, userID int64) (*CartDTO, error)
	AddItem(ctx context.Context, userID int64, req AddItemRequest) (*ItemDTO, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*ItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
}

// productLookup is the catalog read the cart needs. A price lookup doubles as
// the existence check for the product being added.
type productLookup interface {
	GetPrice(ctx context.Context, id int64) (decimal.Decimal, error)
}

type service struct {
	repo     *Repository
	products productLookup
}

// NewService builds a cart service.
func NewService(repo *Repository, products productLookup) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, userID int64) (*CartDTO, error) {
	out := &CartDTO{Items: []ItemDTO{}, TotalPrice: "0.00"}
	cart, err := s.repo.GetCartForUser(ctx, userID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return out, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	lines, err := s.repo.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
	}
	for _, line := range lines {
		out.Items = append(out.Items, itemFromLine(line))
	}
	out.TotalPrice = Total(lines).StringFixed(2)
	return out, nil
}

func (s *service) AddItem(ctx context.Context, userID int64, req AddItemRequest) (*ItemDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := s.products.GetPrice(ctx, req.ProductID); err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	cart, err := s.repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure cart")
	}
	item, err := s.repo.AddOrMerge(ctx, cart.ID, req.ProductID, req.Quantity)
	if err != nil {
		if db.KindOf(err) == db.KindConflict {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product or quantity")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}
	return s.lineDTO(ctx, cart.ID, item.ID)
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, itemID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return s.lineDTO(ctx, item.CartID, itemID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.RemoveLine(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return nil
}

func (s *service) ownedItem(ctx context.Context, userID, itemID int64) (*OwnedItem, error) {
	item, err := s.repo.FindLine(ctx, itemID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cart item belongs to another user")
	}
	return item, nil
}

func (s *service) lineDTO(ctx context.Context, cartID, itemID int64) (*ItemDTO, error) {
	lines, err := s.repo.GetLines(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
	}
	for _, line := range lines {
		if line.ItemID == itemID {
			dto := itemFromLine(line)
			return &dto, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}
