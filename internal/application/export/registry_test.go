package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

func attrWithID(id uint, name string, typ catalog.AttributeType) catalog.Attribute {
	return catalog.Attribute{
		BaseEntity: shared.BaseEntity{ID: id},
		Name:       name,
		Type:       typ,
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry([]catalog.Attribute{
		attrWithID(5, "Color", catalog.AttributeTypeString),
	})

	t.Run("static keys resolve exactly", func(t *testing.T) {
		require.NotNil(t, r.Resolve("sku"))
		assert.Equal(t, "SKU", r.Resolve("sku").Name())
	})

	t.Run("filter and export keys alias one field", func(t *testing.T) {
		byFilter := r.Resolve("attr.5")
		byExport := r.Resolve("attribute.5")
		require.NotNil(t, byFilter)
		assert.Same(t, byFilter.(*attributeField), byExport.(*attributeField))
	})

	t.Run("bare legacy attribute key resolves to nothing", func(t *testing.T) {
		assert.Nil(t, r.Resolve("attribute"))
	})

	t.Run("unknown keys resolve to nil", func(t *testing.T) {
		assert.Nil(t, r.Resolve("attr.99"))
		assert.Nil(t, r.Resolve("no_such_field"))
	})
}

func TestRegistryAvailableFilters(t *testing.T) {
	group := &catalog.AttributeGroup{Name: "Dimensions"}
	group.ID = 1
	withGroup := attrWithID(7, "Width", catalog.AttributeTypeNumber)
	withGroup.Unit = "mm"
	withGroup.Group = group

	r := NewRegistry([]catalog.Attribute{
		withGroup,
		attrWithID(8, "Material", catalog.AttributeTypeString),
	})

	groups := r.AvailableFilters()
	labels := make(map[string][]FieldView)
	for _, g := range groups {
		labels[g.Label] = g.Fields
	}

	t.Run("dynamic groups are namespaced away from static ones", func(t *testing.T) {
		require.Contains(t, labels, "Attributes: Dimensions")
		require.Contains(t, labels, "Attributes: Other")
		assert.Contains(t, labels, "General")
	})

	t.Run("unit joins the display label", func(t *testing.T) {
		fields := labels["Attributes: Dimensions"]
		require.Len(t, fields, 1)
		assert.Equal(t, "Width, mm", fields[0].Label)
		assert.Equal(t, "attr.7", fields[0].Key)
		assert.Equal(t, FilterTypeNumeric, fields[0].Type)
		assert.Equal(t, comparableOperators, fields[0].Operators)
	})

	t.Run("export-only fields carry no filter entry", func(t *testing.T) {
		for _, g := range groups {
			for _, f := range g.Fields {
				assert.NotEqual(t, "discounted_price", f.Key)
				assert.NotEqual(t, "stock", f.Key)
			}
		}
	})

	t.Run("relation facets expose membership operators", func(t *testing.T) {
		var brand *FieldView
		for _, f := range labels["Relations"] {
			if f.Key == "brand" {
				brand = &f
				break
			}
		}
		require.NotNil(t, brand)
		assert.Equal(t, FilterTypeRelation, brand.Type)
		assert.Equal(t, relationOperators, brand.Operators)
	})
}

func TestRegistryAvailableFields(t *testing.T) {
	r := NewRegistry([]catalog.Attribute{
		attrWithID(3, "Color", catalog.AttributeTypeString),
		attrWithID(4, "Heated", catalog.AttributeTypeBoolean),
	})

	groups := r.AvailableFields()
	byLabel := make(map[string][]FieldView)
	for _, g := range groups {
		byLabel[g.Label] = g.Fields
	}

	t.Run("dynamic fields collapse into one group under export keys", func(t *testing.T) {
		fields := byLabel["Attributes"]
		require.Len(t, fields, 2)
		assert.Equal(t, "attribute.3", fields[0].Key)
		assert.Equal(t, "attribute.4", fields[1].Key)
		assert.Equal(t, ModifierBoolean, fields[1].Modifier)
	})

	t.Run("filter-only facets are absent", func(t *testing.T) {
		for _, g := range groups {
			for _, f := range g.Fields {
				assert.NotEqual(t, "warehouse", f.Key)
				assert.NotEqual(t, "category", f.Key)
			}
		}
	})

	t.Run("personalized columns are exportable", func(t *testing.T) {
		keys := make(map[string]bool)
		for _, f := range byLabel["Pricing"] {
			keys[f.Key] = true
		}
		assert.True(t, keys["discounted_price"])
		assert.True(t, keys["base_price"])
	})
}

func TestRegistryEagerLoadFor(t *testing.T) {
	r := NewRegistry([]catalog.Attribute{
		attrWithID(2, "Color", catalog.AttributeTypeString),
	})

	t.Run("unions relation sets without duplicates", func(t *testing.T) {
		relations := r.EagerLoadFor([]string{"stock", "warehouses", "brand.name", "sku"})
		assert.ElementsMatch(t, []string{"Stocks", "Stocks.Warehouse", "Brand"}, relations)
	})

	t.Run("dynamic keys pull the attribute relations", func(t *testing.T) {
		relations := r.EagerLoadFor([]string{"attribute.2"})
		assert.ElementsMatch(t, []string{"AttributeValues", "AttributeValues.Option"}, relations)
	})

	t.Run("unknown keys are skipped", func(t *testing.T) {
		assert.Empty(t, r.EagerLoadFor([]string{"nope", "attr.99"}))
	})
}

func TestRegistryLabelsFor(t *testing.T) {
	r := NewRegistry(nil)
	labels := r.LabelsFor([]string{"sku", "unknown_key"})
	assert.Equal(t, "SKU", labels["sku"])
	assert.Equal(t, "unknown_key", labels["unknown_key"])
}
