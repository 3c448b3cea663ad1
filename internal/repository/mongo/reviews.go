package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(reviewsCollection)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, review)
	return err
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string) ([]model.Review, error) {
	return findAll[model.Review](ctx, r.col, bson.M{"bookId": bookID}, newestFirst())
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	return findAll[model.Review](ctx, r.col, bson.M{"userId": userID}, newestFirst())
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
