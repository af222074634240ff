// Package finance holds the application services for currencies and
// exchange rates.
package finance

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// CreateCurrencyRequest creates a currency
type CreateCurrencyRequest struct {
	Code             string           `json:"code" binding:"required,min=2,max=8"`
	Name             string           `json:"name" binding:"required,min=1,max=64"`
	IsBase           bool             `json:"is_base"`
	ExchangeRate     *decimal.Decimal `json:"exchange_rate"`
	CorrectionFactor *decimal.Decimal `json:"correction_factor"`
}

// UpdateCurrencyRequest updates a currency's name or rates
type UpdateCurrencyRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=64"`
	ExchangeRate     *decimal.Decimal `json:"exchange_rate"`
	CorrectionFactor *decimal.Decimal `json:"correction_factor"`
}

// CurrencyService manages the currency table used for export conversion
type CurrencyService struct {
	currencies finance.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(currencies finance.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencies: currencies}
}

// Create creates a currency. The first currency marked as base wins; a
// second base currency is rejected to keep conversion unambiguous.
func (s *CurrencyService) Create(ctx context.Context, req CreateCurrencyRequest) (*finance.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if _, err := s.currencies.FindByCode(ctx, code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Currency with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.IsBase {
		if _, err := s.currencies.FindBase(ctx); err == nil {
			return nil, shared.NewDomainError("INVALID_STATE", "A base currency already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	currency := &finance.Currency{
		Code:             code,
		Name:             req.Name,
		IsBase:           req.IsBase,
		ExchangeRate:     decimal.NewFromInt(1),
		CorrectionFactor: decimal.NewFromInt(1),
	}
	if req.ExchangeRate != nil {
		if err := validateRate(*req.ExchangeRate); err != nil {
			return nil, err
		}
		currency.ExchangeRate = *req.ExchangeRate
	}
	if req.CorrectionFactor != nil {
		if err := validateRate(*req.CorrectionFactor); err != nil {
			return nil, err
		}
		currency.CorrectionFactor = *req.CorrectionFactor
	}

	if err := s.currencies.Save(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// Get returns one currency
func (s *CurrencyService) Get(ctx context.Context, id uint) (*finance.Currency, error) {
	return s.currencies.FindByID(ctx, id)
}

// List returns all currencies ordered by code
func (s *CurrencyService) List(ctx context.Context) ([]finance.Currency, error) {
	return s.currencies.FindAll(ctx)
}

// Update changes a currency's name or rates. The code and base flag are
// immutable; stored prices are denominated against the base currency.
func (s *CurrencyService) Update(ctx context.Context, id uint, req UpdateCurrencyRequest) (*finance.Currency, error) {
	currency, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.ExchangeRate != nil {
		if err := validateRate(*req.ExchangeRate); err != nil {
			return nil, err
		}
		currency.ExchangeRate = *req.ExchangeRate
	}
	if req.CorrectionFactor != nil {
		if err := validateRate(*req.CorrectionFactor); err != nil {
			return nil, err
		}
		currency.CorrectionFactor = *req.CorrectionFactor
	}

	if err := s.currencies.Save(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// Delete removes a currency. The base currency cannot be deleted.
func (s *CurrencyService) Delete(ctx context.Context, id uint) error {
	currency, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if currency.IsBase {
		return shared.NewDomainError("INVALID_STATE", "The base currency cannot be deleted")
	}
	return s.currencies.Delete(ctx, id)
}

func validateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_RATE", "Exchange rates must be positive")
	}
	return nil
}
