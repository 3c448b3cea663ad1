package service

import (
	"context"
	"strings"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

type AddressInput struct {
	FullName  string `json:"fullName" validate:"required"`
	Phone     string `json:"phone"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Country   string `json:"country" validate:"required"`
	Zipcode   string `json:"zipcode"`
	IsDefault bool   `json:"isDefault"`
}

type AddressService struct {
	addresses repository.AddressRepository
	validate  *validation.Validator
	now       Clock
}

func NewAddressService(addresses repository.AddressRepository, v *validation.Validator) *AddressService {
	return &AddressService{addresses: addresses, validate: v, now: utcNow}
}

func (s *AddressService) List(ctx context.Context, userID string) ([]model.Address, error) {
	out, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch addresses")
	}
	return out, nil
}

func (s *AddressService) Create(ctx context.Context, userID string, in AddressInput) (model.Address, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Address{}, err
	}
	now := s.now()
	addr := in.toModel()
	addr.UserID = userID
	addr.CreatedAt = now
	addr.UpdatedAt = now
	if err := s.addresses.Create(ctx, &addr); err != nil {
		return model.Address{}, apperr.Internal(err, "failed to create address")
	}
	if addr.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID, addr.ID.Hex()); err != nil {
			return model.Address{}, apperr.Internal(err, "failed to update default address")
		}
	}
	return addr, nil
}

// Update replaces the address fields; the record must belong to userID.
func (s *AddressService) Update(ctx context.Context, userID, id string, in AddressInput) (model.Address, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Address{}, err
	}
	addr := in.toModel()
	addr.UpdatedAt = s.now()
	out, err := s.addresses.Update(ctx, userID, id, addr)
	if err != nil {
		return model.Address{}, lookupErr(err, "address not found", "failed to update address")
	}
	if out.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID, id); err != nil {
			return model.Address{}, apperr.Internal(err, "failed to update default address")
		}
	}
	return out, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id string) error {
	if err := s.addresses.Delete(ctx, userID, id); err != nil {
		return lookupErr(err, "address not found", "failed to delete address")
	}
	return nil
}

func (in AddressInput) toModel() model.Address {
	return model.Address{
		FullName:  in.FullName,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Country:   in.Country,
		Zipcode:   in.Zipcode,
		IsDefault: in.IsDefault,
	}
}

// PaymentMethodInput carries a card as submitted. CardNumber is reduced to
// its last four digits and never stored.
type PaymentMethodInput struct {
	CardHolder  string `json:"cardHolder" validate:"required"`
	Brand       string `json:"brand"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"expiryMonth" validate:"gte=1,lte=12"`
	ExpiryYear  int    `json:"expiryYear" validate:"gte=2000"`
	IsDefault   bool   `json:"isDefault"`
}

type PaymentMethodService struct {
	methods  repository.PaymentMethodRepository
	validate *validation.Validator
	now      Clock
}

func NewPaymentMethodService(methods repository.PaymentMethodRepository, v *validation.Validator) *PaymentMethodService {
	return &PaymentMethodService{methods: methods, validate: v, now: utcNow}
}

func (s *PaymentMethodService) List(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	out, err := s.methods.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch payment methods")
	}
	return out, nil
}

func (s *PaymentMethodService) Create(ctx context.Context, userID string, in PaymentMethodInput) (model.PaymentMethod, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.PaymentMethod{}, err
	}
	last4, ok := lastFourDigits(in.CardNumber)
	if !ok {
		return model.PaymentMethod{}, apperr.ValidationWithDetails("validation failed",
			map[string]string{"cardNumber": "must contain at least 4 digits"})
	}

	now := s.now()
	pm := in.toModel()
	pm.UserID = userID
	pm.Last4 = last4
	pm.CreatedAt = now
	pm.UpdatedAt = now
	if err := s.methods.Create(ctx, &pm); err != nil {
		return model.PaymentMethod{}, apperr.Internal(err, "failed to create payment method")
	}
	if pm.IsDefault {
		if err := s.methods.ClearDefault(ctx, userID, pm.ID.Hex()); err != nil {
			return model.PaymentMethod{}, apperr.Internal(err, "failed to update default payment method")
		}
	}
	return pm, nil
}

// Update replaces the card details. A card number is optional here; when
// given it must carry at least four digits and replaces last4.
func (s *PaymentMethodService) Update(ctx context.Context, userID, id string, in PaymentMethodInput) (model.PaymentMethod, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.PaymentMethod{}, err
	}
	pm := in.toModel()
	if strings.TrimSpace(in.CardNumber) != "" {
		last4, ok := lastFourDigits(in.CardNumber)
		if !ok {
			return model.PaymentMethod{}, apperr.ValidationWithDetails("validation failed",
				map[string]string{"cardNumber": "must contain at least 4 digits"})
		}
		pm.Last4 = last4
	}
	pm.UpdatedAt = s.now()

	out, err := s.methods.Update(ctx, userID, id, pm)
	if err != nil {
		return model.PaymentMethod{}, lookupErr(err, "payment method not found", "failed to update payment method")
	}
	if out.IsDefault {
		if err := s.methods.ClearDefault(ctx, userID, id); err != nil {
			return model.PaymentMethod{}, apperr.Internal(err, "failed to update default payment method")
		}
	}
	return out, nil
}

func (s *PaymentMethodService) Delete(ctx context.Context, userID, id string) error {
	if err := s.methods.Delete(ctx, userID, id); err != nil {
		return lookupErr(err, "payment method not found", "failed to delete payment method")
	}
	return nil
}

func (in PaymentMethodInput) toModel() model.PaymentMethod {
	return model.PaymentMethod{
		CardHolder:  in.CardHolder,
		Brand:       in.Brand,
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		IsDefault:   in.IsDefault,
	}
}

// lastFourDigits keeps ASCII digits only; separators such as spaces and
// dashes are dropped.
func lastFourDigits(cardNumber string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)
	if len(digits) < 4 {
		return "", false
	}
	return digits[len(digits)-4:], true
}
