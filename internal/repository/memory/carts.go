package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]model.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]model.Cart)}
}

func (r *CartRepository) GetByUser(_ context.Context, userID string) (model.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return model.Cart{}, repository.ErrNotFound
	}
	c.Items = append([]model.LineItem{}, c.Items...)
	return c, nil
}

func (r *CartRepository) Save(_ context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.carts[cart.UserID]
	if !ok {
		stored = model.Cart{ID: primitive.NewObjectID(), UserID: cart.UserID, CreatedAt: cart.CreatedAt}
	}
	stored.Items = append([]model.LineItem{}, cart.Items...)
	stored.UpdatedAt = cart.UpdatedAt
	r.carts[cart.UserID] = stored
	cart.ID = stored.ID
	return nil
}

type FavoriteRepository struct {
	mu   sync.RWMutex
	favs map[string]model.Favorite
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{favs: make(map[string]model.Favorite)}
}

func (r *FavoriteRepository) GetByUser(_ context.Context, userID string) (model.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.favs[userID]
	if !ok {
		return model.Favorite{}, repository.ErrNotFound
	}
	f.Items = append([]model.FavoriteItem{}, f.Items...)
	return f, nil
}

func (r *FavoriteRepository) Save(_ context.Context, fav *model.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.favs[fav.UserID]
	if !ok {
		stored = model.Favorite{ID: primitive.NewObjectID(), UserID: fav.UserID, CreatedAt: fav.CreatedAt}
	}
	stored.Items = append([]model.FavoriteItem{}, fav.Items...)
	stored.UpdatedAt = fav.UpdatedAt
	r.favs[fav.UserID] = stored
	fav.ID = stored.ID
	return nil
}
