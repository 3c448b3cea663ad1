package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

// BookInput is the payload of book create and update. Nil fields are absent.
type BookInput struct {
	Title         *string  `json:"title" validate:"omitnil,min=1"`
	Description   *string  `json:"description" validate:"omitnil,min=1"`
	Category      *string  `json:"category" validate:"omitnil,min=1"`
	Trending      *bool    `json:"trending"`
	CoverImage    *string  `json:"coverImage"`
	OldPrice      *float64 `json:"oldPrice" validate:"omitnil,gte=0"`
	NewPrice      *float64 `json:"newPrice" validate:"omitnil,gte=0"`
	Stock         *int     `json:"stock" validate:"omitnil,gte=0"`
	Author        *string  `json:"author"`
	Publisher     *string  `json:"publisher"`
	Language      *string  `json:"language"`
	Edition       *string  `json:"edition"`
	Pages         *int     `json:"pages" validate:"omitnil,gte=0"`
	PublishedYear *int     `json:"publishedYear" validate:"omitnil,gte=0"`
}

type CatalogService struct {
	books    repository.BookRepository
	validate *validation.Validator
	logger   *zap.Logger
	now      Clock
}

func NewCatalogService(books repository.BookRepository, v *validation.Validator, logger *zap.Logger) *CatalogService {
	return &CatalogService{books: books, validate: v, logger: logger, now: utcNow}
}

// Create stores a new book. Title, description, category and newPrice are
// required; stock falls back to model.DefaultStock.
func (s *CatalogService) Create(ctx context.Context, in BookInput) (model.Book, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Book{}, err
	}
	missing := map[string]string{}
	if in.Title == nil {
		missing["title"] = "is required"
	}
	if in.Description == nil {
		missing["description"] = "is required"
	}
	if in.Category == nil {
		missing["category"] = "is required"
	}
	if in.NewPrice == nil {
		missing["newPrice"] = "is required"
	}
	if len(missing) > 0 {
		return model.Book{}, apperr.ValidationWithDetails("validation failed", missing)
	}

	now := s.now()
	book := model.Book{
		Stock:     model.DefaultStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBookInput(&book, in)

	if err := s.books.Create(ctx, &book); err != nil {
		return model.Book{}, apperr.Internal(err, "failed to create book")
	}
	s.logger.Info("Book created", zap.String("book_id", book.ID.Hex()), zap.String("title", book.Title))
	return book, nil
}

// List returns books matching query on title or author, newest first.
// No match yields an empty slice.
func (s *CatalogService) List(ctx context.Context, query string) ([]model.Book, error) {
	books, err := s.books.List(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch books")
	}
	return books, nil
}

// Search is List with stricter contract: a blank query is rejected and an
// empty result is reported as not found.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("search query is required")
	}
	books, err := s.books.List(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to search books")
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("no books found")
	}
	return books, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (model.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return model.Book{}, lookupErr(err, "book not found", "failed to fetch book")
	}
	return book, nil
}

// Update changes only the supplied fields.
func (s *CatalogService) Update(ctx context.Context, id string, in BookInput) (model.Book, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Book{}, err
	}
	book, err := s.books.Update(ctx, id, repository.BookUpdate{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Trending:      in.Trending,
		CoverImage:    in.CoverImage,
		OldPrice:      in.OldPrice,
		NewPrice:      in.NewPrice,
		Stock:         in.Stock,
		Author:        in.Author,
		Publisher:     in.Publisher,
		Language:      in.Language,
		Edition:       in.Edition,
		Pages:         in.Pages,
		PublishedYear: in.PublishedYear,
		UpdatedAt:     s.now(),
	})
	if err != nil {
		return model.Book{}, lookupErr(err, "book not found", "failed to update book")
	}
	return book, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (model.Book, error) {
	book, err := s.books.Delete(ctx, id)
	if err != nil {
		return model.Book{}, lookupErr(err, "book not found", "failed to delete book")
	}
	s.logger.Info("Book deleted", zap.String("book_id", id))
	return book, nil
}

func applyBookInput(b *model.Book, in BookInput) {
	set(&b.Title, in.Title)
	set(&b.Description, in.Description)
	set(&b.Category, in.Category)
	set(&b.Trending, in.Trending)
	set(&b.CoverImage, in.CoverImage)
	set(&b.OldPrice, in.OldPrice)
	set(&b.NewPrice, in.NewPrice)
	set(&b.Stock, in.Stock)
	set(&b.Author, in.Author)
	set(&b.Publisher, in.Publisher)
	set(&b.Language, in.Language)
	set(&b.Edition, in.Edition)
	set(&b.Pages, in.Pages)
	set(&b.PublishedYear, in.PublishedYear)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
