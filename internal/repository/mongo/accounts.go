package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(accountsCollection)}
}

// Upsert records a login. Display name and photo only overwrite stored values
// when the identity provider sent them.
func (r *AccountRepository) Upsert(ctx context.Context, sync repository.AccountSync) (model.Account, error) {
	set := bson.M{
		"email":       sync.Email,
		"lastLoginAt": sync.At,
		"updatedAt":   sync.At,
	}
	if sync.DisplayName != "" {
		set["displayName"] = sync.DisplayName
	}
	if sync.PhotoURL != "" {
		set["photoURL"] = sync.PhotoURL
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": sync.At},
	}
	opts := returnAfter().SetUpsert(true)

	var acc model.Account
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": sync.UID}, update, opts).Decode(&acc); err != nil {
		return model.Account{}, translate(err)
	}
	return acc, nil
}

func (r *AccountRepository) GetByUID(ctx context.Context, uid string) (model.Account, error) {
	var acc model.Account
	if err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&acc); err != nil {
		return model.Account{}, translate(err)
	}
	return acc, nil
}

func (r *AccountRepository) Update(ctx context.Context, uid string, upd repository.AccountUpdate) (model.Account, error) {
	set := bson.M{"updatedAt": upd.UpdatedAt}
	setIf(set, "displayName", upd.DisplayName)
	setIf(set, "phone", upd.Phone)
	setIf(set, "photoURL", upd.PhotoURL)

	var acc model.Account
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": uid}, bson.M{"$set": set}, returnAfter()).Decode(&acc); err != nil {
		return model.Account{}, translate(err)
	}
	return acc, nil
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) SetLastSeenOrderCount(ctx context.Context, id string, count int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastSeenOrderCount": count}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var user model.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return model.User{}, translate(err)
	}
	return user, nil
}
