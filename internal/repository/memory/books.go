// Package memory implements the repository interfaces with in-process maps.
// It backs the service and HTTP tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type BookRepository struct {
	mu    sync.RWMutex
	books map[primitive.ObjectID]model.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[primitive.ObjectID]model.Book)}
}

func (r *BookRepository) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	r.books[book.ID] = *book
	return nil
}

func (r *BookRepository) List(_ context.Context, query string) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Book{}
	for _, b := range r.books {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out, func(b model.Book) (int64, primitive.ObjectID) { return b.CreatedAt.UnixNano(), b.ID })
	return out, nil
}

func (r *BookRepository) GetByID(_ context.Context, id string) (model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	oid, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}
	b, ok := r.books[oid]
	if !ok {
		return model.Book{}, repository.ErrNotFound
	}
	return b, nil
}

func (r *BookRepository) GetByIDs(_ context.Context, ids []string) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Book{}
	for _, id := range ids {
		oid, err := parseID(id)
		if err != nil {
			continue
		}
		if b, ok := r.books[oid]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookRepository) Update(_ context.Context, id string, upd repository.BookUpdate) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}
	b, ok := r.books[oid]
	if !ok {
		return model.Book{}, repository.ErrNotFound
	}

	assign(&b.Title, upd.Title)
	assign(&b.Description, upd.Description)
	assign(&b.Category, upd.Category)
	assign(&b.Trending, upd.Trending)
	assign(&b.CoverImage, upd.CoverImage)
	assign(&b.OldPrice, upd.OldPrice)
	assign(&b.NewPrice, upd.NewPrice)
	assign(&b.Stock, upd.Stock)
	assign(&b.Author, upd.Author)
	assign(&b.Publisher, upd.Publisher)
	assign(&b.Language, upd.Language)
	assign(&b.Edition, upd.Edition)
	assign(&b.Pages, upd.Pages)
	assign(&b.PublishedYear, upd.PublishedYear)
	b.UpdatedAt = upd.UpdatedAt

	r.books[oid] = b
	return b, nil
}

func (r *BookRepository) Delete(_ context.Context, id string) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}
	b, ok := r.books[oid]
	if !ok {
		return model.Book{}, repository.ErrNotFound
	}
	delete(r.books, oid)
	return b, nil
}

func (r *BookRepository) DecrementStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	b, ok := r.books[oid]
	if !ok {
		return repository.ErrNotFound
	}
	b.Stock -= quantity
	r.books[oid] = b
	return nil
}

func (r *BookRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.books)), nil
}

func (r *BookRepository) CountTrending(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, b := range r.books {
		if b.Trending {
			n++
		}
	}
	return n, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// sortNewestFirst orders by creation time descending with the id as tie-break,
// matching the {createdAt: -1, _id: -1} sort of the Mongo repositories.
func sortNewestFirst[T any](items []T, key func(T) (int64, primitive.ObjectID)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti > tj
		}
		return idi.Hex() > idj.Hex()
	})
}
