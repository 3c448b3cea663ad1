package service

import (
	"context"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

// AccountSyncInput is what the storefront forwards from the identity provider after sign-in.
type AccountSyncInput struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type AccountUpdateInput struct {
	DisplayName *string `json:"displayName"`
	Phone       *string `json:"phone"`
	PhotoURL    *string `json:"photoURL"`
}

type AccountService struct {
	accounts repository.AccountRepository
	validate *validation.Validator
	now      Clock
}

func NewAccountService(accounts repository.AccountRepository, v *validation.Validator) *AccountService {
	return &AccountService{accounts: accounts, validate: v, now: utcNow}
}

// Sync creates the account on first sight of uid and refreshes lastLoginAt on every call.
func (s *AccountService) Sync(ctx context.Context, in AccountSyncInput) (model.Account, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Account{}, err
	}
	acc, err := s.accounts.Upsert(ctx, repository.AccountSync{
		UID:         in.UID,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		PhotoURL:    in.PhotoURL,
		At:          s.now(),
	})
	if err != nil {
		return model.Account{}, apperr.Internal(err, "failed to sync account")
	}
	return acc, nil
}

func (s *AccountService) Get(ctx context.Context, uid string) (model.Account, error) {
	acc, err := s.accounts.GetByUID(ctx, uid)
	if err != nil {
		return model.Account{}, lookupErr(err, "account not found", "failed to fetch account")
	}
	return acc, nil
}

func (s *AccountService) Update(ctx context.Context, uid string, in AccountUpdateInput) (model.Account, error) {
	acc, err := s.accounts.Update(ctx, uid, repository.AccountUpdate{
		DisplayName: in.DisplayName,
		Phone:       in.Phone,
		PhotoURL:    in.PhotoURL,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		return model.Account{}, lookupErr(err, "account not found", "failed to update account")
	}
	return acc, nil
}
