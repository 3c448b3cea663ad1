package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, order)
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (model.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Order{}, err
	}
	var order model.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return model.Order{}, translate(err)
	}
	return order, nil
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return findAll[model.Order](ctx, r.col, bson.M{"email": email}, newestFirst())
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return findAll[model.Order](ctx, r.col, bson.M{}, newestFirst())
}

func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	return findAll[model.Order](ctx, r.col, bson.M{}, newestFirst().SetLimit(int64(limit)))
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, upd repository.OrderStatusUpdate) (model.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Order{}, err
	}
	set := bson.M{"updatedAt": upd.UpdatedAt}
	setIf(set, "status", upd.Status)
	setIf(set, "shippingStatus", upd.ShippingStatus)

	var order model.Order
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&order)
	if err != nil {
		return model.Order{}, translate(err)
	}
	return order, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": status})
}

func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *OrderRepository) SalesByMonth(ctx context.Context) ([]model.MonthlySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
			{Key: "orderCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	rows := []model.MonthlySales{}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]model.ProductSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "createdAt", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.productId"},
			{Key: "totalSold", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalSold", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	rows := []model.ProductSales{}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
