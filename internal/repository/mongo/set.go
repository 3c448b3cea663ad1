package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore-backend/internal/repository"
)

// NewSet wires every repository to collections of db.
func NewSet(db *mongo.Database) repository.Set {
	return repository.Set{
		Books:          NewBookRepository(db),
		Orders:         NewOrderRepository(db),
		Carts:          NewCartRepository(db),
		Favorites:      NewFavoriteRepository(db),
		Addresses:      NewAddressRepository(db),
		PaymentMethods: NewPaymentMethodRepository(db),
		Reviews:        NewReviewRepository(db),
		Accounts:       NewAccountRepository(db),
		Users:          NewUserRepository(db),
	}
}
