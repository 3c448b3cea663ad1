package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[primitive.ObjectID]model.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[primitive.ObjectID]model.Review)}
}

func (r *ReviewRepository) Create(_ context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	r.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) ListByBook(_ context.Context, bookID string) ([]model.Review, error) {
	return r.filter(func(rv model.Review) bool { return rv.BookID == bookID }), nil
}

func (r *ReviewRepository) ListByUser(_ context.Context, userID string) ([]model.Review, error) {
	return r.filter(func(rv model.Review) bool { return rv.UserID == userID }), nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, ok := r.reviews[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reviews, oid)
	return nil
}

func (r *ReviewRepository) filter(keep func(model.Review) bool) []model.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Review{}
	for _, rv := range r.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sortNewestFirst(out, func(rv model.Review) (int64, primitive.ObjectID) { return rv.CreatedAt.UnixNano(), rv.ID })
	return out
}
