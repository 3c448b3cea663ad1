package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-backend/internal/model"
)

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(cartsCollection)}
}

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart
	if err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return model.Cart{}, translate(err)
	}
	return cart, nil
}

// Save writes the full item list, creating the document on first use.
func (r *CartRepository) Save(ctx context.Context, cart *model.Cart) error {
	id, err := upsertItems(ctx, r.col, cart.UserID, cart.Items, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return err
	}
	if !id.IsZero() {
		cart.ID = id
	}
	return nil
}

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(favoritesCollection)}
}

func (r *FavoriteRepository) GetByUser(ctx context.Context, userID string) (model.Favorite, error) {
	var fav model.Favorite
	if err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&fav); err != nil {
		return model.Favorite{}, translate(err)
	}
	return fav, nil
}

func (r *FavoriteRepository) Save(ctx context.Context, fav *model.Favorite) error {
	id, err := upsertItems(ctx, r.col, fav.UserID, fav.Items, fav.CreatedAt, fav.UpdatedAt)
	if err != nil {
		return err
	}
	if !id.IsZero() {
		fav.ID = id
	}
	return nil
}

// upsertItems replaces the items array of the per-user document and returns
// the new _id when the document was inserted.
func upsertItems(ctx context.Context, col *mongo.Collection, userID string, items any, createdAt, updatedAt any) (primitive.ObjectID, error) {
	update := bson.M{
		"$set":         bson.M{"items": items, "updatedAt": updatedAt},
		"$setOnInsert": bson.M{"createdAt": createdAt},
	}
	res, err := col.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return primitive.NilObjectID, err
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		return oid, nil
	}
	return primitive.NilObjectID, nil
}
