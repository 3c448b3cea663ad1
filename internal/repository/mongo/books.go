package mongo

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(booksCollection)}
}

func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, book)
	return err
}

func (r *BookRepository) List(ctx context.Context, query string) ([]model.Book, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(query); q != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"author": rx},
		}
	}
	return findAll[model.Book](ctx, r.col, filter, newestFirst())
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (model.Book, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		return model.Book{}, translate(err)
	}
	return book, nil
}

func (r *BookRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []model.Book{}, nil
	}
	return findAll[model.Book](ctx, r.col, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *BookRepository) Update(ctx context.Context, id string, upd repository.BookUpdate) (model.Book, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Book{}, err
	}

	set := bson.M{"updatedAt": upd.UpdatedAt}
	setIf(set, "title", upd.Title)
	setIf(set, "description", upd.Description)
	setIf(set, "category", upd.Category)
	setIf(set, "trending", upd.Trending)
	setIf(set, "coverImage", upd.CoverImage)
	setIf(set, "oldPrice", upd.OldPrice)
	setIf(set, "newPrice", upd.NewPrice)
	setIf(set, "stock", upd.Stock)
	setIf(set, "author", upd.Author)
	setIf(set, "publisher", upd.Publisher)
	setIf(set, "language", upd.Language)
	setIf(set, "edition", upd.Edition)
	setIf(set, "pages", upd.Pages)
	setIf(set, "publishedYear", upd.PublishedYear)

	var book model.Book
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&book)
	if err != nil {
		return model.Book{}, translate(err)
	}
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) (model.Book, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		return model.Book{}, translate(err)
	}
	return book, nil
}

func (r *BookRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *BookRepository) CountTrending(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"trending": true})
}
