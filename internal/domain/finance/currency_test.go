package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConvert(t *testing.T) {
	usd := &Currency{
		Code:             "USD",
		ExchangeRate:     dec("27.16"),
		CorrectionFactor: dec("1"),
	}

	t.Run("divides by the effective rate and rounds to 2 places", func(t *testing.T) {
		got := Convert(dec("1000"), usd)
		assert.True(t, dec("36.82").Equal(got), "got %s", got)
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		half := &Currency{Code: "X", ExchangeRate: dec("2"), CorrectionFactor: dec("1")}
		got := Convert(dec("0.05"), half) // 0.025 rounds up, not to even
		assert.True(t, dec("0.03").Equal(got), "got %s", got)
	})

	t.Run("applies the correction factor", func(t *testing.T) {
		corrected := &Currency{
			Code:             "USD",
			ExchangeRate:     dec("27.16"),
			CorrectionFactor: dec("1.05"),
		}
		got := Convert(dec("1000"), corrected)
		// 1000 / (27.16 * 1.05) = 35.0655...
		assert.True(t, dec("35.07").Equal(got), "got %s", got)
	})

	t.Run("base currency converts to itself", func(t *testing.T) {
		base := &Currency{Code: "RUB", IsBase: true, ExchangeRate: dec("27.16")}
		got := Convert(dec("1000"), base)
		assert.True(t, dec("1000").Equal(got))
	})

	t.Run("nil currency passes the amount through", func(t *testing.T) {
		got := Convert(dec("99.99"), nil)
		assert.True(t, dec("99.99").Equal(got))
	})

	t.Run("negative amounts round away from zero", func(t *testing.T) {
		half := &Currency{Code: "X", ExchangeRate: dec("2"), CorrectionFactor: dec("1")}
		got := Convert(dec("-0.05"), half)
		assert.True(t, dec("-0.03").Equal(got), "got %s", got)
	})
}

func TestEffectiveRate(t *testing.T) {
	t.Run("zero rate and factor fall back to 1", func(t *testing.T) {
		c := &Currency{Code: "X"}
		assert.True(t, dec("1").Equal(c.EffectiveRate()))
		assert.True(t, dec("100").Equal(Convert(dec("100"), c)))
	})

	t.Run("negative rate leaves the amount unchanged", func(t *testing.T) {
		c := &Currency{Code: "X", ExchangeRate: dec("-2"), CorrectionFactor: dec("1")}
		assert.True(t, dec("100").Equal(Convert(dec("100"), c)))
	})
}
