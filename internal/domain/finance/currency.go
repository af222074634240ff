package finance

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency is a settlement currency. Product prices are stored in the base
// currency; exports convert them on demand.
type Currency struct {
	shared.BaseEntity
	Code             string          `gorm:"type:varchar(8);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(64);not null"`
	IsBase           bool            `gorm:"not null;default:false"`
	ExchangeRate     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	CorrectionFactor decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// EffectiveRate is the divisor applied when converting a base-currency
// amount into this currency. Unset or non-positive rate and factor fall
// back to 1.
func (c *Currency) EffectiveRate() decimal.Decimal {
	rate := c.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	factor := c.CorrectionFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	return rate.Mul(factor)
}

// Convert converts a base-currency amount into the target currency.
// The base currency converts to itself. A non-positive effective rate
// returns the amount unchanged rather than dividing by zero. The result is
// rounded half away from zero to 2 decimal places; exported totals depend
// on this exact rounding.
func Convert(amount decimal.Decimal, currency *Currency) decimal.Decimal {
	if currency == nil || currency.IsBase {
		return amount
	}
	rate := currency.EffectiveRate()
	if !rate.IsPositive() {
		return amount
	}
	return amount.Div(rate).Round(2)
}

// CurrencyRepository persists currencies
type CurrencyRepository interface {
	// FindByID finds a currency by its ID
	FindByID(ctx context.Context, id uint) (*Currency, error)

	// FindByCode finds a currency by its ISO-style code
	FindByCode(ctx context.Context, code string) (*Currency, error)

	// FindAll returns all currencies
	FindAll(ctx context.Context) ([]Currency, error)

	// FindBase returns the base currency
	FindBase(ctx context.Context) (*Currency, error)

	// Save creates or updates a currency
	Save(ctx context.Context, currency *Currency) error

	// Delete deletes a currency
	Delete(ctx context.Context, id uint) error
}
