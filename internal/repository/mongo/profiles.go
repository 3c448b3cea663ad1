package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type AddressRepository struct {
	col *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{col: db.Collection(addressesCollection)}
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	return findAll[model.Address](ctx, r.col, bson.M{"userId": userID}, newestFirst())
}

func (r *AddressRepository) Create(ctx context.Context, addr *model.Address) error {
	if addr.ID.IsZero() {
		addr.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, addr)
	return err
}

func (r *AddressRepository) Update(ctx context.Context, userID, id string, addr model.Address) (model.Address, error) {
	set := bson.M{
		"fullName":  addr.FullName,
		"phone":     addr.Phone,
		"street":    addr.Street,
		"city":      addr.City,
		"state":     addr.State,
		"country":   addr.Country,
		"zipcode":   addr.Zipcode,
		"isDefault": addr.IsDefault,
		"updatedAt": addr.UpdatedAt,
	}
	var out model.Address
	if err := updateOwned(ctx, r.col, userID, id, set, &out); err != nil {
		return model.Address{}, err
	}
	return out, nil
}

func (r *AddressRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.col, userID, id)
}

func (r *AddressRepository) ClearDefault(ctx context.Context, userID, exceptID string) error {
	return clearDefault(ctx, r.col, userID, exceptID)
}

type PaymentMethodRepository struct {
	col *mongo.Collection
}

func NewPaymentMethodRepository(db *mongo.Database) *PaymentMethodRepository {
	return &PaymentMethodRepository{col: db.Collection(paymentMethodsCollection)}
}

func (r *PaymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	return findAll[model.PaymentMethod](ctx, r.col, bson.M{"userId": userID}, newestFirst())
}

func (r *PaymentMethodRepository) Create(ctx context.Context, pm *model.PaymentMethod) error {
	if pm.ID.IsZero() {
		pm.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, pm)
	return err
}

func (r *PaymentMethodRepository) Update(ctx context.Context, userID, id string, pm model.PaymentMethod) (model.PaymentMethod, error) {
	set := bson.M{
		"cardHolder":  pm.CardHolder,
		"brand":       pm.Brand,
		"expiryMonth": pm.ExpiryMonth,
		"expiryYear":  pm.ExpiryYear,
		"isDefault":   pm.IsDefault,
		"updatedAt":   pm.UpdatedAt,
	}
	if pm.Last4 != "" {
		set["last4"] = pm.Last4
	}
	var out model.PaymentMethod
	if err := updateOwned(ctx, r.col, userID, id, set, &out); err != nil {
		return model.PaymentMethod{}, err
	}
	return out, nil
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.col, userID, id)
}

func (r *PaymentMethodRepository) ClearDefault(ctx context.Context, userID, exceptID string) error {
	return clearDefault(ctx, r.col, userID, exceptID)
}

func updateOwned(ctx context.Context, col *mongo.Collection, userID, id string, set bson.M, out any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": oid, "userId": userID}
	err = col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, returnAfter()).Decode(out)
	return translate(err)
}

func deleteOwned(ctx context.Context, col *mongo.Collection, userID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func clearDefault(ctx context.Context, col *mongo.Collection, userID, exceptID string) error {
	filter := bson.M{"userId": userID, "isDefault": true}
	if oid, err := primitive.ObjectIDFromHex(exceptID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	_, err := col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isDefault": false}})
	return err
}
