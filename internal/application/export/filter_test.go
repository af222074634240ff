package export

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopadmin/backend/internal/domain/catalog"
)

func newFilterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Brand{},
		&catalog.ProductModel{},
		&catalog.Category{},
		&catalog.Certificate{},
		&catalog.Region{},
		&catalog.Warehouse{},
		&catalog.Product{},
		&catalog.ProductStock{},
		&catalog.AttributeGroup{},
		&catalog.Attribute{},
		&catalog.AttributeOption{},
		&catalog.ProductAttributeValue{},
	))
	return db
}

// seedFilterData creates three products with distinct filter surfaces:
// a branded active drill with attribute values, a second-brand saw and a
// brandless hammer with no attribute rows at all.
func seedFilterData(t *testing.T, db *gorm.DB) []catalog.Attribute {
	t.Helper()

	brands := []catalog.Brand{{Name: "Makita", Slug: "makita"}, {Name: "Bosch", Slug: "bosch"}}
	require.NoError(t, db.Create(&brands).Error)

	categories := []catalog.Category{{Name: "Drills", Slug: "drills"}, {Name: "Saws", Slug: "saws"}}
	require.NoError(t, db.Create(&categories).Error)

	material := catalog.Attribute{Name: "Material", Type: catalog.AttributeTypeString}
	power := catalog.Attribute{Name: "Power", Unit: "W", Type: catalog.AttributeTypeNumber}
	cordless := catalog.Attribute{Name: "Cordless", Type: catalog.AttributeTypeBoolean}
	color := catalog.Attribute{Name: "Color", Type: catalog.AttributeTypeSelect}
	require.NoError(t, db.Create(&material).Error)
	require.NoError(t, db.Create(&power).Error)
	require.NoError(t, db.Create(&cordless).Error)
	require.NoError(t, db.Create(&color).Error)

	red := catalog.AttributeOption{AttributeID: color.ID, Value: "Red"}
	blue := catalog.AttributeOption{AttributeID: color.ID, Value: "Blue"}
	require.NoError(t, db.Create(&red).Error)
	require.NoError(t, db.Create(&blue).Error)
	color.Options = []catalog.AttributeOption{red, blue}

	drill := catalog.Product{
		Name: "Drill PRO", SKU: "DRL-1", BasePrice: dec("100"), IsActive: true,
		BrandID: &brands[0].ID, Categories: []catalog.Category{categories[0]},
	}
	saw := catalog.Product{
		Name: "Circular saw", SKU: "SAW-1", BasePrice: dec("250"), IsActive: false,
		BrandID: &brands[1].ID, Categories: []catalog.Category{categories[1]},
	}
	hammer := catalog.Product{Name: "Hammer", SKU: "HAM-1", BasePrice: dec("500"), IsActive: true}
	require.NoError(t, db.Create(&drill).Error)
	require.NoError(t, db.Create(&saw).Error)
	require.NoError(t, db.Create(&hammer).Error)

	values := []catalog.ProductAttributeValue{
		{ProductID: drill.ID, AttributeID: material.ID, TextValue: strPtr("metal")},
		{ProductID: drill.ID, AttributeID: power.ID, NumberValue: decPtr(dec("800"))},
		{ProductID: drill.ID, AttributeID: cordless.ID, BoolValue: boolPtr(true)},
		{ProductID: drill.ID, AttributeID: color.ID, OptionID: &red.ID},
		{ProductID: saw.ID, AttributeID: power.ID, NumberValue: decPtr(dec("1400"))},
		{ProductID: saw.ID, AttributeID: color.ID, OptionID: &blue.ID},
	}
	require.NoError(t, db.Create(&values).Error)

	return []catalog.Attribute{material, power, cordless, color}
}

// filterNames applies a filter expression and returns matching product names
func filterNames(t *testing.T, db *gorm.DB, attrs []catalog.Attribute, rawFilter string) []string {
	t.Helper()
	group, err := ParseFilterInput([]byte(rawFilter))
	require.NoError(t, err)

	registry := NewRegistry(attrs)
	tx := NewCompiler(registry).Apply(db.Model(&catalog.Product{}), group)

	var names []string
	require.NoError(t, tx.Order("products.id").Pluck("products.name", &names).Error)
	return names
}

func TestCompilerStaticFields(t *testing.T) {
	db := newFilterDB(t)
	attrs := seedFilterData(t, db)

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Len(t, filterNames(t, db, attrs, ``), 3)
		assert.Len(t, filterNames(t, db, attrs, `null`), 3)
		assert.Len(t, filterNames(t, db, attrs, `[]`), 3)
		assert.Len(t, filterNames(t, db, attrs, `{"logic": "and", "conditions": []}`), 3)
	})

	t.Run("flat list combines with implicit and", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[
			{"field": "is_active", "operator": "=", "value": true},
			{"field": "base_price", "operator": "<", "value": 300}
		]`)
		assert.Equal(t, []string{"Drill PRO"}, names)
	})

	t.Run("text contains", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "name", "operator": "contains", "value": "saw"}]`)
		assert.Equal(t, []string{"Circular saw"}, names)
	})

	t.Run("between includes both bounds", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "base_price", "operator": "between", "value": [100, 250]}]`)
		assert.Equal(t, []string{"Drill PRO", "Circular saw"}, names)
	})

	t.Run("or group", func(t *testing.T) {
		names := filterNames(t, db, attrs, `{
			"logic": "or",
			"conditions": [
				{"field": "name", "operator": "=", "value": "Hammer"},
				{"field": "base_price", "operator": "<=", "value": 100}
			]
		}`)
		assert.Equal(t, []string{"Drill PRO", "Hammer"}, names)
	})

	t.Run("nested group under a leaf", func(t *testing.T) {
		names := filterNames(t, db, attrs, `{
			"logic": "and",
			"conditions": [
				{"field": "is_active", "operator": "=", "value": true},
				{"type": "group", "logic": "or", "conditions": [
					{"field": "base_price", "operator": ">", "value": 400},
					{"field": "name", "operator": "starts_with", "value": "Drill"}
				]}
			]
		}`)
		assert.Equal(t, []string{"Drill PRO", "Hammer"}, names)
	})

	t.Run("unknown fields and malformed leaves contribute nothing", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[
			{"field": "no_such_field", "operator": "=", "value": 1},
			{"field": "base_price", "operator": "bogus_op", "value": 1},
			{"field": "name", "operator": "contains", "value": ""},
			{"field": "is_active", "operator": "=", "value": true}
		]`)
		assert.Equal(t, []string{"Drill PRO", "Hammer"}, names)
	})
}

func TestCompilerRelationFacets(t *testing.T) {
	db := newFilterDB(t)
	attrs := seedFilterData(t, db)

	t.Run("brand in", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "brand", "operator": "in", "value": [1]}]`)
		assert.Equal(t, []string{"Drill PRO"}, names)
	})

	t.Run("brand not_in keeps brandless products", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "brand", "operator": "not_in", "value": [1]}]`)
		assert.Equal(t, []string{"Circular saw", "Hammer"}, names)
	})

	t.Run("scalar value acts as a single-element list", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "brand", "operator": "in", "value": 2}]`)
		assert.Equal(t, []string{"Circular saw"}, names)
	})

	t.Run("category membership goes through the join table", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "category", "operator": "in", "value": [1, 2]}]`)
		assert.Equal(t, []string{"Drill PRO", "Circular saw"}, names)
	})

	t.Run("category not_in keeps uncategorized products", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "category", "operator": "not_in", "value": [1]}]`)
		assert.Equal(t, []string{"Circular saw", "Hammer"}, names)
	})

	t.Run("empty id list contributes nothing", func(t *testing.T) {
		names := filterNames(t, db, attrs, `[{"field": "brand", "operator": "in", "value": []}]`)
		assert.Len(t, names, 3)
	})
}

func TestCompilerAttributeFields(t *testing.T) {
	db := newFilterDB(t)
	attrs := seedFilterData(t, db)
	material, power, cordless, color := attrs[0], attrs[1], attrs[2], attrs[3]

	key := func(a catalog.Attribute) string {
		return filterKeyPrefix + itoa(a.ID)
	}

	t.Run("text equals", func(t *testing.T) {
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(material)+`", "operator": "=", "value": "metal"}]`)
		assert.Equal(t, []string{"Drill PRO"}, names)
	})

	t.Run("number between", func(t *testing.T) {
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(power)+`", "operator": "between", "value": [800, 1400]}]`)
		assert.Equal(t, []string{"Drill PRO", "Circular saw"}, names)
	})

	t.Run("boolean equals", func(t *testing.T) {
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(cordless)+`", "operator": "=", "value": true}]`)
		assert.Equal(t, []string{"Drill PRO"}, names)
	})

	t.Run("select in", func(t *testing.T) {
		blueID := color.Options[1].ID
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(color)+`", "operator": "in", "value": [`+itoa(blueID)+`]}]`)
		assert.Equal(t, []string{"Circular saw"}, names)
	})

	t.Run("select not_in keeps products without the attribute", func(t *testing.T) {
		redID := color.Options[0].ID
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(color)+`", "operator": "not_in", "value": [`+itoa(redID)+`]}]`)
		assert.Equal(t, []string{"Circular saw", "Hammer"}, names)
	})

	t.Run("legacy attribute leaf is rewritten", func(t *testing.T) {
		names := filterNames(t, db, attrs,
			`[{"field": "attribute", "operator": "=", "value": {"attribute_id": `+itoa(material.ID)+`, "value": "metal"}}]`)
		assert.Equal(t, []string{"Drill PRO"}, names)
	})

	t.Run("blank value contributes nothing", func(t *testing.T) {
		names := filterNames(t, db, attrs,
			`[{"field": "`+key(material)+`", "operator": "=", "value": ""}]`)
		assert.Len(t, names, 3)
	})
}

func TestCompilerCountMatchesFetch(t *testing.T) {
	db := newFilterDB(t)
	attrs := seedFilterData(t, db)

	group, err := ParseFilterInput([]byte(`[{"field": "is_active", "operator": "=", "value": true}]`))
	require.NoError(t, err)

	registry := NewRegistry(attrs)
	compiler := NewCompiler(registry)

	var total int64
	require.NoError(t, compiler.Apply(db.Model(&catalog.Product{}), group).Count(&total).Error)

	var products []catalog.Product
	require.NoError(t, compiler.Apply(db.Model(&catalog.Product{}), group).Find(&products).Error)

	assert.EqualValues(t, len(products), total)
	assert.EqualValues(t, 2, total)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
