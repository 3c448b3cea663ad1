package service

import (
	"context"
	"errors"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

type FavoriteItemInput struct {
	ProductID  string   `json:"productId" validate:"required"`
	Title      string   `json:"title"`
	CoverImage string   `json:"coverImage"`
	Price      *float64 `json:"price" validate:"omitnil,gte=0"`
	NewPrice   *float64 `json:"newPrice" validate:"omitnil,gte=0"`
}

type FavoriteService struct {
	favorites repository.FavoriteRepository
	validate  *validation.Validator
	now       Clock
}

func NewFavoriteService(favorites repository.FavoriteRepository, v *validation.Validator) *FavoriteService {
	return &FavoriteService{favorites: favorites, validate: v, now: utcNow}
}

// Get returns the user's favorites, creating and storing an empty list on first access.
func (s *FavoriteService) Get(ctx context.Context, userID string) (model.Favorite, error) {
	fav, created, err := s.load(ctx, userID)
	if err != nil {
		return model.Favorite{}, err
	}
	if created {
		if err := s.favorites.Save(ctx, &fav); err != nil {
			return model.Favorite{}, apperr.Internal(err, "failed to create favorites")
		}
	}
	return fav, nil
}

// AddItem inserts the product once; adding it again leaves the list unchanged.
func (s *FavoriteService) AddItem(ctx context.Context, userID string, in FavoriteItemInput) (model.Favorite, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Favorite{}, err
	}
	fav, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Favorite{}, err
	}
	if favoriteIndex(fav.Items, in.ProductID) >= 0 {
		return fav, nil
	}

	price := CartItemInput{Price: in.Price, NewPrice: in.NewPrice}.price()
	fav.Items = append(fav.Items, model.FavoriteItem{
		ProductID:  in.ProductID,
		Title:      in.Title,
		CoverImage: in.CoverImage,
		Price:      price,
	})
	return s.save(ctx, fav)
}

func (s *FavoriteService) RemoveItem(ctx context.Context, userID, productID string) (model.Favorite, error) {
	fav, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Favorite{}, err
	}
	if idx := favoriteIndex(fav.Items, productID); idx >= 0 {
		fav.Items = append(fav.Items[:idx], fav.Items[idx+1:]...)
	}
	return s.save(ctx, fav)
}

func (s *FavoriteService) Clear(ctx context.Context, userID string) (model.Favorite, error) {
	fav, _, err := s.load(ctx, userID)
	if err != nil {
		return model.Favorite{}, err
	}
	fav.Items = []model.FavoriteItem{}
	return s.save(ctx, fav)
}

func (s *FavoriteService) load(ctx context.Context, userID string) (model.Favorite, bool, error) {
	fav, err := s.favorites.GetByUser(ctx, userID)
	switch {
	case err == nil:
		if fav.Items == nil {
			fav.Items = []model.FavoriteItem{}
		}
		return fav, false, nil
	case errors.Is(err, repository.ErrNotFound):
		now := s.now()
		return model.Favorite{UserID: userID, Items: []model.FavoriteItem{}, CreatedAt: now, UpdatedAt: now}, true, nil
	default:
		return model.Favorite{}, false, apperr.Internal(err, "failed to fetch favorites")
	}
}

func (s *FavoriteService) save(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	fav.UpdatedAt = s.now()
	if err := s.favorites.Save(ctx, &fav); err != nil {
		return model.Favorite{}, apperr.Internal(err, "failed to update favorites")
	}
	return fav, nil
}

func favoriteIndex(items []model.FavoriteItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
