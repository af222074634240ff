package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/shared"
)

type fakeCurrencyRepo struct {
	currencies map[uint]*finance.Currency
	nextID     uint
}

func newFakeCurrencyRepo() *fakeCurrencyRepo {
	return &fakeCurrencyRepo{currencies: map[uint]*finance.Currency{}, nextID: 1}
}

func (r *fakeCurrencyRepo) FindByID(ctx context.Context, id uint) (*finance.Currency, error) {
	if c, ok := r.currencies[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	for _, c := range r.currencies {
		if c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindAll(ctx context.Context) ([]finance.Currency, error) {
	out := make([]finance.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCurrencyRepo) FindBase(ctx context.Context) (*finance.Currency, error) {
	for _, c := range r.currencies {
		if c.IsBase {
			clone := *c
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) Save(ctx context.Context, currency *finance.Currency) error {
	if currency.ID == 0 {
		currency.ID = r.nextID
		r.nextID++
	}
	clone := *currency
	r.currencies[currency.ID] = &clone
	return nil
}

func (r *fakeCurrencyRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.currencies[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.currencies, id)
	return nil
}

func ratePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCurrencyServiceCreate(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	base, err := service.Create(ctx, CreateCurrencyRequest{Code: " rub ", Name: "Рубль", IsBase: true})
	require.NoError(t, err)
	assert.Equal(t, "RUB", base.Code)
	assert.True(t, base.IsBase)
	assert.True(t, base.ExchangeRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, base.CorrectionFactor.Equal(decimal.NewFromInt(1)))

	usd, err := service.Create(ctx, CreateCurrencyRequest{
		Code:         "USD",
		Name:         "Доллар",
		ExchangeRate: ratePtr("27.16"),
	})
	require.NoError(t, err)
	assert.True(t, usd.ExchangeRate.Equal(decimal.RequireFromString("27.16")))
	assert.False(t, usd.IsBase)
}

func TestCurrencyServiceCreateDuplicateCode(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateCurrencyRequest{Code: "USD", Name: "Доллар"})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreateCurrencyRequest{Code: "usd", Name: "Доллар США"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCurrencyServiceCreateSecondBase(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateCurrencyRequest{Code: "RUB", Name: "Рубль", IsBase: true})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreateCurrencyRequest{Code: "USD", Name: "Доллар", IsBase: true})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestCurrencyServiceCreateInvalidRate(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateCurrencyRequest{
		Code:         "USD",
		Name:         "Доллар",
		ExchangeRate: ratePtr("0"),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RATE", domainErr.Code)

	_, err = service.Create(ctx, CreateCurrencyRequest{
		Code:             "EUR",
		Name:             "Евро",
		CorrectionFactor: ratePtr("-1.05"),
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RATE", domainErr.Code)
}

func TestCurrencyServiceUpdate(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateCurrencyRequest{Code: "USD", Name: "Доллар"})
	require.NoError(t, err)

	name := "Доллар США"
	updated, err := service.Update(ctx, created.ID, UpdateCurrencyRequest{
		Name:             &name,
		ExchangeRate:     ratePtr("27.16"),
		CorrectionFactor: ratePtr("1.05"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Доллар США", updated.Name)
	assert.Equal(t, "USD", updated.Code)
	assert.True(t, updated.ExchangeRate.Equal(decimal.RequireFromString("27.16")))
	assert.True(t, updated.CorrectionFactor.Equal(decimal.RequireFromString("1.05")))

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Доллар США", stored.Name)
}

func TestCurrencyServiceUpdateNotFound(t *testing.T) {
	service := NewCurrencyService(newFakeCurrencyRepo())

	_, err := service.Update(context.Background(), 404, UpdateCurrencyRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCurrencyServiceDelete(t *testing.T) {
	repo := newFakeCurrencyRepo()
	service := NewCurrencyService(repo)
	ctx := context.Background()

	base, err := service.Create(ctx, CreateCurrencyRequest{Code: "RUB", Name: "Рубль", IsBase: true})
	require.NoError(t, err)
	usd, err := service.Create(ctx, CreateCurrencyRequest{Code: "USD", Name: "Доллар"})
	require.NoError(t, err)

	var domainErr *shared.DomainError
	err = service.Delete(ctx, base.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	require.NoError(t, service.Delete(ctx, usd.ID))
	_, err = service.Get(ctx, usd.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
