package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository/memory"
	"bookstore-backend/internal/service"
	"bookstore-backend/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func newCatalog() *service.CatalogService {
	return service.NewCatalogService(memory.NewBookRepository(), validation.New(), zap.NewNop())
}

func validBook(title, author string) service.BookInput {
	return service.BookInput{
		Title:       ptr(title),
		Description: ptr("a book"),
		Category:    ptr("fiction"),
		NewPrice:    ptr(12.5),
		Author:      ptr(author),
	}
}

func TestCatalog_CreateDefaultsStock(t *testing.T) {
	svc := newCatalog()

	book, err := svc.Create(context.Background(), validBook("Dune", "Herbert"))
	require.NoError(t, err)

	assert.False(t, book.ID.IsZero())
	assert.Equal(t, model.DefaultStock, book.Stock)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestCatalog_CreateKeepsExplicitStock(t *testing.T) {
	svc := newCatalog()

	in := validBook("Dune", "Herbert")
	in.Stock = ptr(3)
	book, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, book.Stock)
}

func TestCatalog_CreateRequiresFields(t *testing.T) {
	svc := newCatalog()

	_, err := svc.Create(context.Background(), service.BookInput{Title: ptr("Only a title")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	details, ok := ae.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "description")
	assert.Contains(t, details, "category")
	assert.Contains(t, details, "newPrice")
	assert.NotContains(t, details, "title")
}

func TestCatalog_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog()
	_, err := svc.Create(ctx, validBook("Dune", "Frank Herbert"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validBook("Emma", "Jane Austen"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		listLen int
		search  *apperr.Error
	}{
		{name: "title match", query: "dune", listLen: 1},
		{name: "author match", query: "AUSTEN", listLen: 1},
		{name: "no match", query: "tolkien", listLen: 0, search: apperr.ErrNotFound},
		{name: "regex chars are literal", query: "(.*)", listLen: 0, search: apperr.ErrNotFound},
		{name: "blank", query: "  ", listLen: 2, search: apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, list, tt.listLen)
			assert.NotNil(t, list)

			found, err := svc.Search(ctx, tt.query)
			if tt.search != nil {
				assert.ErrorIs(t, err, tt.search)
				return
			}
			require.NoError(t, err)
			assert.Len(t, found, tt.listLen)
		})
	}
}

func TestCatalog_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog()
	book, err := svc.Create(ctx, validBook("Dune", "Herbert"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, book.ID.Hex(), service.BookInput{NewPrice: ptr(9.99), Trending: ptr(true)})
	require.NoError(t, err)

	assert.Equal(t, 9.99, updated.NewPrice)
	assert.True(t, updated.Trending)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "a book", updated.Description)
	assert.Equal(t, model.DefaultStock, updated.Stock)
}

func TestCatalog_MissingBook(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog()

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound, id)

		_, err = svc.Update(ctx, id, service.BookInput{Title: ptr("x")})
		assert.ErrorIs(t, err, apperr.ErrNotFound, id)

		_, err = svc.Delete(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound, id)
	}
}

func TestCatalog_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog()
	book, err := svc.Create(ctx, validBook("Dune", "Herbert"))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, book.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, book.ID, deleted.ID)

	_, err = svc.Get(ctx, book.ID.Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
