package service

import (
	"context"
	"errors"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

// CartItemInput is a product added to a cart. The storefront sends the book's
// newPrice; price is accepted as well and wins when both are present.
type CartItemInput struct {
	ProductID  string   `json:"productId" validate:"required"`
	Title      string   `json:"title"`
	CoverImage string   `json:"coverImage"`
	Price      *float64 `json:"price" validate:"omitnil,gte=0"`
	NewPrice   *float64 `json:"newPrice" validate:"omitnil,gte=0"`
	Quantity   int      `json:"quantity" validate:"gte=0"`
}

func (in CartItemInput) price() float64 {
	switch {
	case in.Price != nil:
		return *in.Price
	case in.NewPrice != nil:
		return *in.NewPrice
	default:
		return 0
	}
}

type CartService struct {
	carts    repository.CartRepository
	validate *validation.Validator
	now      Clock
}

func NewCartService(carts repository.CartRepository, v *validation.Validator) *CartService {
	return &CartService{carts: carts, validate: v, now: utcNow}
}

// Get returns the user's cart, creating and storing an empty one on first access.
func (s *CartService) Get(ctx context.Context, userID string) (model.Cart, error) {
	cart, created, err := s.load(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	if created {
		if err := s.carts.Save(ctx, &cart); err != nil {
			return model.Cart{}, apperr.Internal(err, "failed to create cart")
		}
	}
	return cart, nil
}

// AddItem merges the item into the cart: an existing line for the same
// product grows by quantity, otherwise the item is appended.
func (s *CartService) AddItem(ctx context.Context, userID string, in CartItemInput) (model.Cart, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Cart{}, err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}

	cart, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == in.ProductID {
			cart.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.LineItem{
			ProductID:  in.ProductID,
			Title:      in.Title,
			CoverImage: in.CoverImage,
			Price:      in.price(),
			Quantity:   qty,
		})
	}
	return s.save(ctx, cart)
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (model.Cart, error) {
	cart, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	idx := cartIndex(cart.Items, productID)
	if idx < 0 {
		return model.Cart{}, apperr.NotFound("item not found in cart")
	}
	if quantity > 0 {
		cart.Items[idx].Quantity = quantity
	} else {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	return s.save(ctx, cart)
}

// RemoveItem drops the product's line; removing an absent product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (model.Cart, error) {
	cart, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	if idx := cartIndex(cart.Items, productID); idx >= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	return s.save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID string) (model.Cart, error) {
	cart, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	cart.Items = []model.LineItem{}
	return s.save(ctx, cart)
}

func (s *CartService) load(ctx context.Context, userID string) (model.Cart, bool, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	switch {
	case err == nil:
		if cart.Items == nil {
			cart.Items = []model.LineItem{}
		}
		return cart, false, nil
	case errors.Is(err, repository.ErrNotFound):
		now := s.now()
		return model.Cart{UserID: userID, Items: []model.LineItem{}, CreatedAt: now, UpdatedAt: now}, true, nil
	default:
		return model.Cart{}, false, apperr.Internal(err, "failed to fetch cart")
	}
}

func (s *CartService) save(ctx context.Context, cart model.Cart) (model.Cart, error) {
	cart.UpdatedAt = s.now()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return model.Cart{}, apperr.Internal(err, "failed to update cart")
	}
	return cart, nil
}

func cartIndex(items []model.LineItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
