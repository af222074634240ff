package export

import (
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// valueFunc reads one field's raw value from a hydrated product
type valueFunc func(p *catalog.Product, viewer *identity.User) any

// columnField is a field backed by a fixed product column or a derived
// value. Its filtering discipline is keyed by the declared filter type.
type columnField struct {
	key         string
	name        string
	group       string
	filterGroup string
	column      string
	typ         FilterType
	modifier    ModifierType
	exportable  bool
	eager       []string
	value       valueFunc
}

// columnOption configures a columnField at construction time
type columnOption func(*columnField)

// withModifier declares the extraction post-processing transform
func withModifier(m ModifierType) columnOption {
	return func(f *columnField) { f.modifier = m }
}

// withEagerLoad names relations needed before reading the value
func withEagerLoad(relations ...string) columnOption {
	return func(f *columnField) { f.eager = relations }
}

// withFilterGroup overrides the filter listing group
func withFilterGroup(group string) columnOption {
	return func(f *columnField) { f.filterGroup = group }
}

// exportOnly strips the filter surface, keeping the field exportable
func exportOnly() columnOption {
	return func(f *columnField) {
		f.typ = FilterTypeNone
		f.column = ""
	}
}

func newColumnField(key, name, group, column string, typ FilterType, value valueFunc, opts ...columnOption) *columnField {
	f := &columnField{
		key:        key,
		name:       name,
		group:      group,
		column:     column,
		typ:        typ,
		exportable: true,
		value:      value,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *columnField) Key() string   { return f.key }
func (f *columnField) Name() string  { return f.name }
func (f *columnField) Group() string { return f.group }

func (f *columnField) FilterGroup() string {
	if f.filterGroup != "" {
		return f.filterGroup
	}
	return f.group
}

func (f *columnField) Filterable() bool       { return f.typ != FilterTypeNone }
func (f *columnField) Exportable() bool       { return f.exportable }
func (f *columnField) FilterType() FilterType { return f.typ }

func (f *columnField) Operators() []string {
	switch f.typ {
	case FilterTypeText:
		return textOperators
	case FilterTypeNumeric, FilterTypeDate:
		return comparableOperators
	case FilterTypeBoolean:
		return booleanOperators
	default:
		return nil
	}
}

func (f *columnField) Options() []Option      { return nil }
func (f *columnField) EagerLoad() []string    { return f.eager }
func (f *columnField) Modifier() ModifierType { return f.modifier }
func (f *columnField) Dynamic() bool          { return false }

func (f *columnField) Value(p *catalog.Product, viewer *identity.User) any {
	if f.value == nil {
		return nil
	}
	return f.value(p, viewer)
}

func (f *columnField) ApplyFilter(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	switch f.typ {
	case FilterTypeText:
		return f.applyText(tx, operator, value)
	case FilterTypeNumeric, FilterTypeDate:
		return f.applyComparable(tx, operator, value)
	case FilterTypeBoolean:
		return f.applyBoolean(tx, operator, value)
	default:
		return tx, false
	}
}

func (f *columnField) applyText(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	s, ok := value.(string)
	if !ok || s == "" {
		return tx, false
	}
	switch operator {
	case OpEquals:
		return tx.Where(f.column+" = ?", s), true
	case OpContains:
		return tx.Where(f.column+" LIKE ?", "%"+s+"%"), true
	case OpNotContains:
		return tx.Where(f.column+" NOT LIKE ?", "%"+s+"%"), true
	case OpStartsWith:
		return tx.Where(f.column+" LIKE ?", s+"%"), true
	default:
		return tx, false
	}
}

func (f *columnField) applyComparable(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	if operator == OpBetween {
		low, high, ok := betweenPair(value)
		if !ok {
			return tx, false
		}
		return tx.Where(f.column+" BETWEEN ? AND ?", low, high), true
	}
	if blank(value) {
		return tx, false
	}
	switch operator {
	case OpEquals, OpGreater, OpLess, OpGreaterEq, OpLessEq:
		return tx.Where(f.column+" "+operator+" ?", value), true
	default:
		return tx, false
	}
}

func (f *columnField) applyBoolean(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	if operator != OpEquals {
		return tx, false
	}
	return tx.Where(f.column+" = ?", truthy(value)), true
}

// Display groups of the fixed field set
const (
	groupGeneral   = "General"
	groupPricing   = "Pricing"
	groupStock     = "Stock"
	groupRelations = "Relations"
	groupDates     = "Dates"
)

// staticFields builds the fixed field set. Order defines default listing
// grouping only, not filter precedence.
func staticFields() []Field {
	return []Field{
		newColumnField("id", "ID", groupGeneral, "products.id", FilterTypeNumeric,
			func(p *catalog.Product, _ *identity.User) any { return p.ID }),
		newColumnField("name", "Name", groupGeneral, "products.name", FilterTypeText,
			func(p *catalog.Product, _ *identity.User) any { return p.Name }),
		newColumnField("sku", "SKU", groupGeneral, "products.sku", FilterTypeText,
			func(p *catalog.Product, _ *identity.User) any { return p.SKU }),
		newColumnField("barcode", "Barcode", groupGeneral, "products.barcode", FilterTypeText,
			func(p *catalog.Product, _ *identity.User) any { return p.Barcode }),
		newColumnField("description", "Description", groupGeneral, "products.description", FilterTypeText,
			func(p *catalog.Product, _ *identity.User) any { return p.Description }),
		newColumnField("unit", "Unit", groupGeneral, "products.unit", FilterTypeText,
			func(p *catalog.Product, _ *identity.User) any { return p.Unit }),
		newColumnField("is_active", "Active", groupGeneral, "products.is_active", FilterTypeBoolean,
			func(p *catalog.Product, _ *identity.User) any { return p.IsActive },
			withModifier(ModifierBoolean)),
		newColumnField("is_new", "New arrival", groupGeneral, "products.is_new", FilterTypeBoolean,
			func(p *catalog.Product, _ *identity.User) any { return p.IsNew },
			withModifier(ModifierBoolean)),
		newColumnField("is_featured", "Featured", groupGeneral, "products.is_featured", FilterTypeBoolean,
			func(p *catalog.Product, _ *identity.User) any { return p.IsFeatured },
			withModifier(ModifierBoolean)),

		newColumnField("base_price", "Base price", groupPricing, "products.base_price", FilterTypeNumeric,
			func(p *catalog.Product, _ *identity.User) any { return p.BasePrice },
			withModifier(ModifierPrice)),
		newColumnField("purchase_price", "Purchase price", groupPricing, "products.purchase_price", FilterTypeNumeric,
			func(p *catalog.Product, _ *identity.User) any { return p.PurchasePrice },
			withModifier(ModifierPrice)),
		// Personalized: promotional price plus the viewing user's personal discount
		newColumnField("discounted_price", "Discounted price", groupPricing, "", FilterTypeNone,
			func(p *catalog.Product, viewer *identity.User) any {
				price := p.EffectivePrice()
				if viewer != nil {
					price = viewer.PersonalPrice(price)
				}
				return price
			},
			withModifier(ModifierPrice), exportOnly()),

		// Personalized: stock restricted to the viewing user's region
		newColumnField("stock", "Stock", groupStock, "", FilterTypeNone,
			func(p *catalog.Product, viewer *identity.User) any {
				var regionID *uint
				if viewer != nil {
					regionID = viewer.RegionID
				}
				return p.TotalStock(regionID)
			},
			exportOnly(), withEagerLoad("Stocks", "Stocks.Warehouse")),
		newColumnField("min_stock", "Minimum stock", groupStock, "products.min_stock", FilterTypeNumeric,
			func(p *catalog.Product, _ *identity.User) any { return p.MinStock }),
		newColumnField("weight", "Weight, kg", groupStock, "products.weight", FilterTypeNumeric,
			func(p *catalog.Product, _ *identity.User) any { return p.Weight }),

		newColumnField("brand.name", "Brand", groupRelations, "", FilterTypeNone,
			func(p *catalog.Product, _ *identity.User) any {
				if p.Brand == nil {
					return nil
				}
				return p.Brand.Name
			},
			exportOnly(), withEagerLoad("Brand")),
		newColumnField("model.name", "Model", groupRelations, "", FilterTypeNone,
			func(p *catalog.Product, _ *identity.User) any {
				if p.Model == nil {
					return nil
				}
				return p.Model.Name
			},
			exportOnly(), withEagerLoad("Model")),
		newColumnField("categories", "Categories", groupRelations, "", FilterTypeNone,
			func(p *catalog.Product, _ *identity.User) any { return p.CategoryNames() },
			exportOnly(), withEagerLoad("Categories"), withModifier(ModifierMultiValue)),
		newColumnField("certificates", "Certificates", groupRelations, "", FilterTypeNone,
			func(p *catalog.Product, _ *identity.User) any { return p.CertificateNames() },
			exportOnly(), withEagerLoad("Certificates"), withModifier(ModifierMultiValue)),
		newColumnField("warehouses", "Warehouses", groupRelations, "", FilterTypeNone,
			func(p *catalog.Product, _ *identity.User) any { return p.WarehouseNames() },
			exportOnly(), withEagerLoad("Stocks", "Stocks.Warehouse"), withModifier(ModifierMultiValue)),

		// Filter-only relation facets
		newRelationColumnField("brand", "Brand", "products.brand_id"),
		newRelationColumnField("model", "Model", "products.model_id"),
		newRelationJoinField("category", "Category", "product_categories", "category_id"),
		newRelationJoinField("certificate", "Certificate", "product_certificates", "certificate_id"),
		newRelationJoinField("warehouse", "Warehouse", "product_stocks", "warehouse_id"),

		newColumnField("created_at", "Created at", groupDates, "products.created_at", FilterTypeDate,
			func(p *catalog.Product, _ *identity.User) any { return p.CreatedAt }),
		newColumnField("updated_at", "Updated at", groupDates, "products.updated_at", FilterTypeDate,
			func(p *catalog.Product, _ *identity.User) any { return p.UpdatedAt }),
	}
}
