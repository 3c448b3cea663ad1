package service

import (
	"context"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

type ReviewInput struct {
	BookID   string `json:"bookId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	validate *validation.Validator
	now      Clock
}

func NewReviewService(reviews repository.ReviewRepository, v *validation.Validator) *ReviewService {
	return &ReviewService{reviews: reviews, validate: v, now: utcNow}
}

func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (model.Review, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Review{}, err
	}
	r := model.Review{
		BookID:    in.BookID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now(),
	}
	if err := s.reviews.Create(ctx, &r); err != nil {
		return model.Review{}, apperr.Internal(err, "failed to create review")
	}
	return r, nil
}

func (s *ReviewService) ListByBook(ctx context.Context, bookID string) ([]model.Review, error) {
	out, err := s.reviews.ListByBook(ctx, bookID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch reviews")
	}
	return out, nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	out, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch reviews")
	}
	return out, nil
}

// Delete removes the review regardless of who wrote it.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return lookupErr(err, "review not found", "failed to delete review")
	}
	return nil
}
