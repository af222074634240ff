package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

func productWithValue(row catalog.ProductAttributeValue) *catalog.Product {
	return &catalog.Product{AttributeValues: []catalog.ProductAttributeValue{row}}
}

func strPtr(s string) *string                   { return &s }
func boolPtr(b bool) *bool                      { return &b }
func uintPtr(u uint) *uint                      { return &u }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestAttributeFieldValue(t *testing.T) {
	attr := attrWithID(9, "Power", catalog.AttributeTypeNumber)
	f := newAttributeField(attr)

	t.Run("absent row yields nil", func(t *testing.T) {
		assert.Nil(t, f.Value(&catalog.Product{}, nil))
	})

	t.Run("number channel", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 9,
			NumberValue: decPtr(dec("12.5")),
		})
		got, ok := f.Value(p, nil).(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, dec("12.5").Equal(got))
	})

	t.Run("text beats number when both channels are set", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 9,
			TextValue:   strPtr("twelve"),
			NumberValue: decPtr(dec("12")),
			BoolValue:   boolPtr(true),
		})
		assert.Equal(t, "twelve", f.Value(p, nil))
	})

	t.Run("boolean channel", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 9,
			BoolValue:   boolPtr(true),
		})
		assert.Equal(t, true, f.Value(p, nil))
	})

	t.Run("rows of other attributes are ignored", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 99,
			TextValue:   strPtr("other"),
		})
		assert.Nil(t, f.Value(p, nil))
	})
}

func TestAttributeFieldOptionValue(t *testing.T) {
	attr := attrWithID(4, "Color", catalog.AttributeTypeSelect)
	attr.Options = []catalog.AttributeOption{
		{BaseEntity: shared.BaseEntity{ID: 41}, AttributeID: 4, Value: "Red"},
		{BaseEntity: shared.BaseEntity{ID: 42}, AttributeID: 4, Value: "Blue"},
	}
	f := newAttributeField(attr)

	t.Run("loaded option row resolves to its text", func(t *testing.T) {
		opt := catalog.AttributeOption{Value: "Red"}
		opt.ID = 41
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 4,
			OptionID:    uintPtr(41),
			Option:      &opt,
		})
		assert.Equal(t, "Red", f.Value(p, nil))
	})

	t.Run("unloaded option falls back to the metadata lookup", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 4,
			OptionID:    uintPtr(42),
		})
		assert.Equal(t, "Blue", f.Value(p, nil))
	})

	t.Run("unknown option id yields nil", func(t *testing.T) {
		p := productWithValue(catalog.ProductAttributeValue{
			AttributeID: 4,
			OptionID:    uintPtr(77),
		})
		assert.Nil(t, f.Value(p, nil))
	})
}

func TestAttributeFieldSurface(t *testing.T) {
	t.Run("type decides filter surface and operators", func(t *testing.T) {
		cases := []struct {
			typ       catalog.AttributeType
			filter    FilterType
			operators []string
		}{
			{catalog.AttributeTypeString, FilterTypeText, textOperators},
			{catalog.AttributeTypeNumber, FilterTypeNumeric, comparableOperators},
			{catalog.AttributeTypeBoolean, FilterTypeBoolean, booleanOperators},
			{catalog.AttributeTypeSelect, FilterTypeSelect, relationOperators},
		}
		for _, tc := range cases {
			f := newAttributeField(attrWithID(1, "A", tc.typ))
			assert.Equal(t, tc.filter, f.FilterType(), string(tc.typ))
			assert.Equal(t, tc.operators, f.Operators(), string(tc.typ))
		}
	})

	t.Run("boolean attributes carry the boolean modifier", func(t *testing.T) {
		assert.Equal(t, ModifierBoolean,
			newAttributeField(attrWithID(1, "A", catalog.AttributeTypeBoolean)).Modifier())
		assert.Equal(t, ModifierNone,
			newAttributeField(attrWithID(1, "A", catalog.AttributeTypeString)).Modifier())
	})

	t.Run("options are exposed for select attributes only", func(t *testing.T) {
		sel := attrWithID(2, "Color", catalog.AttributeTypeSelect)
		sel.Options = []catalog.AttributeOption{
			{BaseEntity: shared.BaseEntity{ID: 21}, Value: "Red"},
		}
		opts := newAttributeField(sel).Options()
		require.Len(t, opts, 1)
		assert.Equal(t, uint(21), opts[0].Value)
		assert.Equal(t, "Red", opts[0].Label)

		assert.Nil(t, newAttributeField(attrWithID(3, "S", catalog.AttributeTypeString)).Options())
	})
}
