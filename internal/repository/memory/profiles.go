package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

// ownedStore holds per-user records addressed by (userId, _id).
type ownedStore[T any] struct {
	mu      sync.RWMutex
	records map[primitive.ObjectID]T
	meta    func(*T) (id *primitive.ObjectID, userID string, createdAt int64, isDefault *bool)
}

func newOwnedStore[T any](meta func(*T) (*primitive.ObjectID, string, int64, *bool)) *ownedStore[T] {
	return &ownedStore[T]{records: make(map[primitive.ObjectID]T), meta: meta}
}

func (s *ownedStore[T]) list(userID string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, rec := range s.records {
		if _, uid, _, _ := s.meta(&rec); uid == userID {
			out = append(out, rec)
		}
	}
	sortNewestFirst(out, func(rec T) (int64, primitive.ObjectID) {
		id, _, created, _ := s.meta(&rec)
		return created, *id
	})
	return out
}

func (s *ownedStore[T]) create(rec *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, _, _ := s.meta(rec)
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	s.records[*id] = *rec
}

// update applies edit to the record owned by userID and returns the result.
func (s *ownedStore[T]) update(userID, id string, edit func(*T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	oid, err := parseID(id)
	if err != nil {
		return zero, err
	}
	rec, ok := s.records[oid]
	if !ok {
		return zero, repository.ErrNotFound
	}
	if _, uid, _, _ := s.meta(&rec); uid != userID {
		return zero, repository.ErrNotFound
	}
	edit(&rec)
	s.records[oid] = rec
	return rec, nil
}

func (s *ownedStore[T]) delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	rec, ok := s.records[oid]
	if !ok {
		return repository.ErrNotFound
	}
	if _, uid, _, _ := s.meta(&rec); uid != userID {
		return repository.ErrNotFound
	}
	delete(s.records, oid)
	return nil
}

func (s *ownedStore[T]) clearDefault(userID, exceptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for oid, rec := range s.records {
		_, uid, _, isDefault := s.meta(&rec)
		if uid != userID || oid.Hex() == exceptID {
			continue
		}
		*isDefault = false
		s.records[oid] = rec
	}
}

type AddressRepository struct {
	store *ownedStore[model.Address]
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{store: newOwnedStore(func(a *model.Address) (*primitive.ObjectID, string, int64, *bool) {
		return &a.ID, a.UserID, a.CreatedAt.UnixNano(), &a.IsDefault
	})}
}

func (r *AddressRepository) ListByUser(_ context.Context, userID string) ([]model.Address, error) {
	return r.store.list(userID), nil
}

func (r *AddressRepository) Create(_ context.Context, addr *model.Address) error {
	r.store.create(addr)
	return nil
}

func (r *AddressRepository) Update(_ context.Context, userID, id string, addr model.Address) (model.Address, error) {
	return r.store.update(userID, id, func(a *model.Address) {
		a.FullName = addr.FullName
		a.Phone = addr.Phone
		a.Street = addr.Street
		a.City = addr.City
		a.State = addr.State
		a.Country = addr.Country
		a.Zipcode = addr.Zipcode
		a.IsDefault = addr.IsDefault
		a.UpdatedAt = addr.UpdatedAt
	})
}

func (r *AddressRepository) Delete(_ context.Context, userID, id string) error {
	return r.store.delete(userID, id)
}

func (r *AddressRepository) ClearDefault(_ context.Context, userID, exceptID string) error {
	r.store.clearDefault(userID, exceptID)
	return nil
}

type PaymentMethodRepository struct {
	store *ownedStore[model.PaymentMethod]
}

func NewPaymentMethodRepository() *PaymentMethodRepository {
	return &PaymentMethodRepository{store: newOwnedStore(func(p *model.PaymentMethod) (*primitive.ObjectID, string, int64, *bool) {
		return &p.ID, p.UserID, p.CreatedAt.UnixNano(), &p.IsDefault
	})}
}

func (r *PaymentMethodRepository) ListByUser(_ context.Context, userID string) ([]model.PaymentMethod, error) {
	return r.store.list(userID), nil
}

func (r *PaymentMethodRepository) Create(_ context.Context, pm *model.PaymentMethod) error {
	r.store.create(pm)
	return nil
}

func (r *PaymentMethodRepository) Update(_ context.Context, userID, id string, pm model.PaymentMethod) (model.PaymentMethod, error) {
	return r.store.update(userID, id, func(p *model.PaymentMethod) {
		p.CardHolder = pm.CardHolder
		p.Brand = pm.Brand
		p.ExpiryMonth = pm.ExpiryMonth
		p.ExpiryYear = pm.ExpiryYear
		p.IsDefault = pm.IsDefault
		if pm.Last4 != "" {
			p.Last4 = pm.Last4
		}
		p.UpdatedAt = pm.UpdatedAt
	})
}

func (r *PaymentMethodRepository) Delete(_ context.Context, userID, id string) error {
	return r.store.delete(userID, id)
}

func (r *PaymentMethodRepository) ClearDefault(_ context.Context, userID, exceptID string) error {
	r.store.clearDefault(userID, exceptID)
	return nil
}
