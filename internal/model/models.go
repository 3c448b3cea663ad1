package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStock is the stock a book gets when none is supplied.
const DefaultStock = 100

const (
	OrderStatusPending       = "pending"
	ShippingStatusProcessing = "processing"

	RoleAdmin = "admin"
)

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Trending      bool               `bson:"trending" json:"trending"`
	CoverImage    string             `bson:"coverImage" json:"coverImage"`
	OldPrice      float64            `bson:"oldPrice" json:"oldPrice"`
	NewPrice      float64            `bson:"newPrice" json:"newPrice"`
	Stock         int                `bson:"stock" json:"stock"`
	Author        string             `bson:"author,omitempty" json:"author,omitempty"`
	Publisher     string             `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Language      string             `bson:"language,omitempty" json:"language,omitempty"`
	Edition       string             `bson:"edition,omitempty" json:"edition,omitempty"`
	Pages         int                `bson:"pages,omitempty" json:"pages,omitempty"`
	PublishedYear int                `bson:"publishedYear,omitempty" json:"publishedYear,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LineItem is a product snapshot embedded in carts and orders.
type LineItem struct {
	ProductID  string  `bson:"productId" json:"productId"`
	Title      string  `bson:"title" json:"title"`
	CoverImage string  `bson:"coverImage" json:"coverImage"`
	Price      float64 `bson:"price" json:"price"`
	Quantity   int     `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []LineItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type FavoriteItem struct {
	ProductID  string  `bson:"productId" json:"productId"`
	Title      string  `bson:"title" json:"title"`
	CoverImage string  `bson:"coverImage" json:"coverImage"`
	Price      float64 `bson:"price" json:"price"`
}

type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []FavoriteItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ShippingAddress struct {
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	State   string `bson:"state" json:"state"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        ShippingAddress    `bson:"address" json:"address"`
	Items          []LineItem         `bson:"items" json:"items"`
	TotalPrice     float64            `bson:"totalPrice" json:"totalPrice"`
	Status         string             `bson:"status" json:"status"`
	ShippingStatus string             `bson:"shippingStatus" json:"shippingStatus"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId" json:"userId"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Phone     string             `bson:"phone" json:"phone"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Country   string             `bson:"country" json:"country"`
	Zipcode   string             `bson:"zipcode" json:"zipcode"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PaymentMethod keeps only the displayable part of a card.
type PaymentMethod struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      string             `bson:"userId" json:"userId"`
	CardHolder  string             `bson:"cardHolder" json:"cardHolder"`
	Brand       string             `bson:"brand" json:"brand"`
	Last4       string             `bson:"last4" json:"last4"`
	ExpiryMonth int                `bson:"expiryMonth" json:"expiryMonth"`
	ExpiryYear  int                `bson:"expiryYear" json:"expiryYear"`
	IsDefault   bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookID    string             `bson:"bookId" json:"bookId"`
	UserID    string             `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Account is the storefront profile of an externally authenticated user.
type Account struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UID         string             `bson:"uid" json:"uid"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	PhotoURL    string             `bson:"photoURL" json:"photoURL"`
	Phone       string             `bson:"phone" json:"phone"`
	LastLoginAt time.Time          `bson:"lastLoginAt" json:"lastLoginAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// User is a dashboard operator.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username           string             `bson:"username" json:"username"`
	Password           string             `bson:"password" json:"-"`
	Role               string             `bson:"role" json:"role"`
	LastSeenOrderCount int                `bson:"lastSeenOrderCount" json:"lastSeenOrderCount"`
}

// MonthlySales is revenue for one calendar month ("2025-01").
type MonthlySales struct {
	Month      string  `bson:"_id" json:"month"`
	TotalSales float64 `bson:"totalSales" json:"totalSales"`
	OrderCount int     `bson:"orderCount" json:"orderCount"`
}

// ProductSales is the quantity sold of one product.
type ProductSales struct {
	ProductID string `bson:"_id" json:"productId"`
	TotalSold int    `bson:"totalSold" json:"totalSold"`
}
