package export

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// fakeCurrencyRepo serves currencies from a map and counts lookups
type fakeCurrencyRepo struct {
	currencies map[uint]*finance.Currency
	lookups    int
}

func (r *fakeCurrencyRepo) FindByID(_ context.Context, id uint) (*finance.Currency, error) {
	r.lookups++
	if c, ok := r.currencies[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindByCode(context.Context, string) (*finance.Currency, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindAll(context.Context) ([]finance.Currency, error) { return nil, nil }

func (r *fakeCurrencyRepo) FindBase(context.Context) (*finance.Currency, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) Save(context.Context, *finance.Currency) error { return nil }
func (r *fakeCurrencyRepo) Delete(context.Context, uint) error            { return nil }

func newTestExtractor(currencies map[uint]*finance.Currency, viewer *identity.User) (*Extractor, *fakeCurrencyRepo) {
	repo := &fakeCurrencyRepo{currencies: currencies}
	return NewExtractor(NewRegistry(nil), repo, viewer), repo
}

func usdCurrency() *finance.Currency {
	return &finance.Currency{
		Code:             "USD",
		ExchangeRate:     dec("27.16"),
		CorrectionFactor: dec("1"),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExtractorColumns(t *testing.T) {
	e, _ := newTestExtractor(nil, nil)

	columns := e.Columns([]FieldSelection{
		{Key: "sku"},
		{Key: "name", Label: "Товар"},
		{Key: "mystery"},
	})

	require.Len(t, columns, 3)
	assert.Equal(t, Column{Key: "sku", Label: "SKU"}, columns[0])
	assert.Equal(t, Column{Key: "name", Label: "Товар"}, columns[1])
	assert.Equal(t, Column{Key: "mystery", Label: "mystery"}, columns[2])
}

func TestExtractorRowBooleanModifier(t *testing.T) {
	e, _ := newTestExtractor(nil, nil)
	p := &catalog.Product{IsActive: true, IsNew: false}

	t.Run("default labels", func(t *testing.T) {
		row := e.Row(context.Background(), p, []FieldSelection{
			{Key: "is_active", Modifiers: map[string]any{}},
			{Key: "is_new", Modifiers: map[string]any{}},
		})
		assert.Equal(t, "Да", row["is_active"])
		assert.Equal(t, "Нет", row["is_new"])
	})

	t.Run("custom labels", func(t *testing.T) {
		row := e.Row(context.Background(), p, []FieldSelection{
			{Key: "is_active", Modifiers: map[string]any{"true_value": "yes", "false_value": "no"}},
			{Key: "is_new", Modifiers: map[string]any{"true_value": "yes", "false_value": "no"}},
		})
		assert.Equal(t, "yes", row["is_active"])
		assert.Equal(t, "no", row["is_new"])
	})

	t.Run("no modifier bag means raw value", func(t *testing.T) {
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "is_active"}})
		assert.Equal(t, true, row["is_active"])
	})
}

func TestExtractorRowPriceModifier(t *testing.T) {
	p := &catalog.Product{BasePrice: dec("1000")}
	toUSD := map[string]any{"currency_id": float64(1)}

	t.Run("converts through the requested currency", func(t *testing.T) {
		e, _ := newTestExtractor(map[uint]*finance.Currency{1: usdCurrency()}, nil)
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "base_price", Modifiers: toUSD}})
		got, ok := row["base_price"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, dec("36.82").Equal(got), "got %s", got)
	})

	t.Run("memoizes currency lookups across rows", func(t *testing.T) {
		e, repo := newTestExtractor(map[uint]*finance.Currency{1: usdCurrency()}, nil)
		for i := 0; i < 5; i++ {
			e.Row(context.Background(), p, []FieldSelection{{Key: "base_price", Modifiers: toUSD}})
		}
		assert.Equal(t, 1, repo.lookups)
	})

	t.Run("memoizes misses too", func(t *testing.T) {
		e, repo := newTestExtractor(nil, nil)
		for i := 0; i < 3; i++ {
			row := e.Row(context.Background(), p, []FieldSelection{{Key: "base_price", Modifiers: toUSD}})
			got, ok := row["base_price"].(decimal.Decimal)
			require.True(t, ok)
			assert.True(t, dec("1000").Equal(got))
		}
		assert.Equal(t, 1, repo.lookups)
	})

	t.Run("base currency passes the raw value through", func(t *testing.T) {
		base := &finance.Currency{Code: "RUB", IsBase: true}
		e, _ := newTestExtractor(map[uint]*finance.Currency{1: base}, nil)
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "base_price", Modifiers: toUSD}})
		got, ok := row["base_price"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, dec("1000").Equal(got))
	})

	t.Run("missing currency option passes the raw value through", func(t *testing.T) {
		e, repo := newTestExtractor(nil, nil)
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "base_price", Modifiers: map[string]any{}}})
		got, ok := row["base_price"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, dec("1000").Equal(got))
		assert.Zero(t, repo.lookups)
	})
}

func TestExtractorRowMultiValueModifier(t *testing.T) {
	e, _ := newTestExtractor(nil, nil)
	p := &catalog.Product{
		Categories: []catalog.Category{{Name: "Tools"}, {Name: "Garden"}},
	}

	t.Run("default separator", func(t *testing.T) {
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "categories", Modifiers: map[string]any{}}})
		assert.Equal(t, "Tools, Garden", row["categories"])
	})

	t.Run("custom separator", func(t *testing.T) {
		row := e.Row(context.Background(), p, []FieldSelection{{Key: "categories", Modifiers: map[string]any{"separator": "; "}}})
		assert.Equal(t, "Tools; Garden", row["categories"])
	})
}

func TestExtractorRowPersonalization(t *testing.T) {
	discount := dec("10")
	viewer := &identity.User{DiscountPercent: discount}
	sale := dec("200")
	p := &catalog.Product{BasePrice: dec("500"), SalePrice: &sale}

	e, _ := newTestExtractor(nil, viewer)
	row := e.Row(context.Background(), p, []FieldSelection{{Key: "discounted_price"}})
	got, ok := row["discounted_price"].(decimal.Decimal)
	require.True(t, ok)
	// sale price 200 minus the viewer's 10 percent
	assert.True(t, dec("180").Equal(got), "got %s", got)
}

func TestExtractorRowUnresolvableKey(t *testing.T) {
	e, _ := newTestExtractor(nil, nil)
	row := e.Row(context.Background(), &catalog.Product{}, []FieldSelection{{Key: "ghost"}})
	value, present := row["ghost"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestParseFieldSelection(t *testing.T) {
	t.Run("mixed strings and objects keep order", func(t *testing.T) {
		raw := []byte(`["sku", {"key": "base_price", "label": "Price", "modifiers": {"currency_id": 1}}, "name"]`)
		selections, err := ParseFieldSelection(raw)
		require.NoError(t, err)
		require.Len(t, selections, 3)
		assert.Equal(t, "sku", selections[0].Key)
		assert.Equal(t, "base_price", selections[1].Key)
		assert.Equal(t, "Price", selections[1].Label)
		assert.Equal(t, float64(1), selections[1].Modifiers["currency_id"])
		assert.Equal(t, "name", selections[2].Key)
	})

	t.Run("empty input yields no selections", func(t *testing.T) {
		selections, err := ParseFieldSelection(nil)
		require.NoError(t, err)
		assert.Empty(t, selections)

		selections, err = ParseFieldSelection([]byte("null"))
		require.NoError(t, err)
		assert.Empty(t, selections)
	})

	t.Run("object without key is rejected", func(t *testing.T) {
		_, err := ParseFieldSelection([]byte(`[{"label": "No key"}]`))
		assert.Error(t, err)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		_, err := ParseFieldSelection([]byte(`{"not": "a list"}`))
		assert.Error(t, err)
	})
}
