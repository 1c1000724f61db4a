package wishlist

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *product.Repository
	CartRepo     *cart.Repository
	Tx           txRunner
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, userID int64) (*WishlistDTO, error)
	AddItem(ctx context.Context, userID, productID int64) (*ItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	MoveToCart(ctx context.Context, userID, itemID int64) (*cart.ItemDTO, error)
}

type service struct {
	wishlistRepo *Repository
	productRepo  *product.Repository
	cartRepo     *cart.Repository
	tx           txRunner
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
		cartRepo:     params.CartRepo,
		tx:           params.Tx,
	}, nil
}

func (s *service) GetWishlist(ctx context.Context, userID int64) (*WishlistDTO, error) {
	records, err := s.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist")
	}
	items := make([]ItemDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDTO())
	}
	return &WishlistDTO{Items: items}, nil
}

func (s *service) AddItem(ctx context.Context, userID, productID int64) (*ItemDTO, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	wishlist, err := s.wishlistRepo.EnsureWishlist(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure wishlist")
	}
	item, err := s.wishlistRepo.AddItem(ctx, wishlist.ID, productID)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already in wishlist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist item")
	}
	dto := ItemRecord{
		ID:              item.ID,
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		QuantityInStock: p.QuantityInStock,
		ImageURL:        p.ImageURL,
	}.toDTO()
	return &dto, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if _, err := ownedBy(ctx, s.wishlistRepo, userID, itemID); err != nil {
		return err
	}
	if err := s.wishlistRepo.RemoveItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
	}
	return nil
}

// MoveToCart adds one unit of the liked product to the cart and drops the
// wishlist entry in the same unit of work.
func (s *service) MoveToCart(ctx context.Context, userID, itemID int64) (*cart.ItemDTO, error) {
	var moved *cart.ItemDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		wishlistRepo := s.wishlistRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		item, err := ownedBy(ctx, wishlistRepo, userID, itemID)
		if err != nil {
			return err
		}

		p, err := s.productRepo.WithTx(tx).FindByID(ctx, item.ProductID)
		if err != nil {
			if db.KindOf(err) == db.KindNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		if p.QuantityInStock <= 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
		}

		userCart, err := cartRepo.EnsureCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure cart")
		}
		cartItem, err := cartRepo.AddOrMerge(ctx, userCart.ID, p.ID, 1)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
		}
		if err := wishlistRepo.RemoveItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
		}

		moved = &cart.ItemDTO{
			ID:        cartItem.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  cartItem.Quantity,
			UnitPrice: p.Price.StringFixed(2),
			LineTotal: cart.Total([]cart.Line{{Price: p.Price, Quantity: cartItem.Quantity}}).StringFixed(2),
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "move to cart")
		}
		return nil, err
	}
	return moved, nil
}

func ownedBy(ctx context.Context, repo *Repository, userID, itemID int64) (*OwnedItem, error) {
	item, err := repo.FindItem(ctx, itemID)
	if err != nil {
		if db.KindOf(err) == db.KindNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist item")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist item belongs to another user")
	}
	return item, nil
}
