package repository

import (
	"context"
	"errors"
	"time"

	"bookstore-backend/internal/model"
)

// ErrNotFound is returned when no document matches, including when the
// supplied id is not a valid ObjectID.
var ErrNotFound = errors.New("document not found")

// BookUpdate carries the fields of a partial book update; nil fields are left untouched.
type BookUpdate struct {
	Title         *string
	Description   *string
	Category      *string
	Trending      *bool
	CoverImage    *string
	OldPrice      *float64
	NewPrice      *float64
	Stock         *int
	Author        *string
	Publisher     *string
	Language      *string
	Edition       *string
	Pages         *int
	PublishedYear *int
	UpdatedAt     time.Time
}

// OrderStatusUpdate carries admin status changes; nil fields are left untouched.
type OrderStatusUpdate struct {
	Status         *string
	ShippingStatus *string
	UpdatedAt      time.Time
}

// AccountSync is the identity-provider data written on every login.
type AccountSync struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	At          time.Time
}

// AccountUpdate carries profile edits; nil fields are left untouched.
type AccountUpdate struct {
	DisplayName *string
	Phone       *string
	PhotoURL    *string
	UpdatedAt   time.Time
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	// List returns books whose title or author contains query (case-insensitive),
	// newest first. An empty query matches everything.
	List(ctx context.Context, query string) ([]model.Book, error)
	GetByID(ctx context.Context, id string) (model.Book, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Book, error)
	Update(ctx context.Context, id string, upd BookUpdate) (model.Book, error)
	Delete(ctx context.Context, id string) (model.Book, error)
	// DecrementStock subtracts quantity from the book's stock without any lower bound.
	DecrementStock(ctx context.Context, id string, quantity int) error
	Count(ctx context.Context) (int64, error)
	CountTrending(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Recent(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, upd OrderStatusUpdate) (model.Order, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
	// SalesByMonth groups revenue by calendar month of createdAt, oldest month first.
	SalesByMonth(ctx context.Context) ([]model.MonthlySales, error)
	// TopProducts sums item quantities of orders created in [from, to), highest first.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]model.ProductSales, error)
}

// CartRepository stores one cart per user. Save upserts the whole document.
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
}

// FavoriteRepository stores one favorites list per user. Save upserts the whole document.
type FavoriteRepository interface {
	GetByUser(ctx context.Context, userID string) (model.Favorite, error)
	Save(ctx context.Context, fav *model.Favorite) error
}

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Address, error)
	Create(ctx context.Context, addr *model.Address) error
	// Update replaces the editable fields of the address matching id and userID.
	Update(ctx context.Context, userID, id string, addr model.Address) (model.Address, error)
	Delete(ctx context.Context, userID, id string) error
	// ClearDefault unsets isDefault on every address of the user except exceptID.
	ClearDefault(ctx context.Context, userID, exceptID string) error
}

type PaymentMethodRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.PaymentMethod, error)
	Create(ctx context.Context, pm *model.PaymentMethod) error
	Update(ctx context.Context, userID, id string, pm model.PaymentMethod) (model.PaymentMethod, error)
	Delete(ctx context.Context, userID, id string) error
	ClearDefault(ctx context.Context, userID, exceptID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByBook(ctx context.Context, bookID string) ([]model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]model.Review, error)
	Delete(ctx context.Context, id string) error
}

type AccountRepository interface {
	Upsert(ctx context.Context, sync AccountSync) (model.Account, error)
	GetByUID(ctx context.Context, uid string) (model.Account, error)
	Update(ctx context.Context, uid string, upd AccountUpdate) (model.Account, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	SetLastSeenOrderCount(ctx context.Context, id string, count int) error
}

// Set bundles one implementation of every repository.
type Set struct {
	Books          BookRepository
	Orders         OrderRepository
	Carts          CartRepository
	Favorites      FavoriteRepository
	Addresses      AddressRepository
	PaymentMethods PaymentMethodRepository
	Reviews        ReviewRepository
	Accounts       AccountRepository
	Users          UserRepository
}
