package memory

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

var errDuplicateUsername = errors.New("username already exists")

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]model.Account)}
}

func (r *AccountRepository) Upsert(_ context.Context, in repository.AccountSync) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[in.UID]
	if !ok {
		acc = model.Account{ID: primitive.NewObjectID(), UID: in.UID, CreatedAt: in.At}
	}
	acc.Email = in.Email
	if in.DisplayName != "" {
		acc.DisplayName = in.DisplayName
	}
	if in.PhotoURL != "" {
		acc.PhotoURL = in.PhotoURL
	}
	acc.LastLoginAt = in.At
	acc.UpdatedAt = in.At
	r.accounts[in.UID] = acc
	return acc, nil
}

func (r *AccountRepository) GetByUID(_ context.Context, uid string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[uid]
	if !ok {
		return model.Account{}, repository.ErrNotFound
	}
	return acc, nil
}

func (r *AccountRepository) Update(_ context.Context, uid string, upd repository.AccountUpdate) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[uid]
	if !ok {
		return model.Account{}, repository.ErrNotFound
	}
	assign(&acc.DisplayName, upd.DisplayName)
	assign(&acc.Phone, upd.Phone)
	assign(&acc.PhotoURL, upd.PhotoURL)
	acc.UpdatedAt = upd.UpdatedAt
	r.accounts[uid] = acc
	return acc, nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return errDuplicateUsername
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	oid, err := parseID(id)
	if err != nil {
		return model.User{}, err
	}
	u, ok := r.users[oid]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *UserRepository) SetLastSeenOrderCount(_ context.Context, id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	u, ok := r.users[oid]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastSeenOrderCount = count
	r.users[oid] = u
	return nil
}
