package memory

import "bookstore-backend/internal/repository"

// NewSet returns an empty in-memory repository set.
func NewSet() repository.Set {
	return repository.Set{
		Books:          NewBookRepository(),
		Orders:         NewOrderRepository(),
		Carts:          NewCartRepository(),
		Favorites:      NewFavoriteRepository(),
		Addresses:      NewAddressRepository(),
		PaymentMethods: NewPaymentMethodRepository(),
		Reviews:        NewReviewRepository(),
		Accounts:       NewAccountRepository(),
		Users:          NewUserRepository(),
	}
}
