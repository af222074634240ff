package export

import (
	"strconv"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// Key prefixes of the two dynamic-attribute keyspaces. Filter expressions
// address an attribute as "attr.<id>", export selections as
// "attribute.<id>"; both resolve to the same field instance.
const (
	filterKeyPrefix = "attr."
	exportKeyPrefix = "attribute."
)

// defaultAttributeGroup labels attributes without a declared group
const defaultAttributeGroup = "Other"

// attributeField is the dynamic field wrapping one user-defined attribute.
// Its filter semantics, operators and value channel all derive from the
// attribute's declared type.
type attributeField struct {
	attr    catalog.Attribute
	options map[uint]string // option id -> display text, select type only
}

func newAttributeField(attr catalog.Attribute) *attributeField {
	f := &attributeField{attr: attr}
	if attr.Type == catalog.AttributeTypeSelect {
		f.options = make(map[uint]string, len(attr.Options))
		for _, opt := range attr.Options {
			f.options[opt.ID] = opt.Value
		}
	}
	return f
}

func (f *attributeField) Key() string {
	return filterKeyPrefix + strconv.FormatUint(uint64(f.attr.ID), 10)
}

// ExportKey is the aliased key the export selection input uses
func (f *attributeField) ExportKey() string {
	return exportKeyPrefix + strconv.FormatUint(uint64(f.attr.ID), 10)
}

func (f *attributeField) Name() string {
	if f.attr.Unit != "" {
		return f.attr.Name + ", " + f.attr.Unit
	}
	return f.attr.Name
}

func (f *attributeField) Group() string {
	if f.attr.Group != nil {
		return f.attr.Group.Name
	}
	return defaultAttributeGroup
}

func (f *attributeField) FilterGroup() string { return f.Group() }
func (f *attributeField) Filterable() bool    { return true }
func (f *attributeField) Exportable() bool    { return true }
func (f *attributeField) Dynamic() bool       { return true }

func (f *attributeField) FilterType() FilterType {
	switch f.attr.Type {
	case catalog.AttributeTypeNumber:
		return FilterTypeNumeric
	case catalog.AttributeTypeBoolean:
		return FilterTypeBoolean
	case catalog.AttributeTypeSelect:
		return FilterTypeSelect
	default:
		return FilterTypeText
	}
}

func (f *attributeField) Operators() []string {
	switch f.attr.Type {
	case catalog.AttributeTypeNumber:
		return comparableOperators
	case catalog.AttributeTypeBoolean:
		return booleanOperators
	case catalog.AttributeTypeSelect:
		return relationOperators
	default:
		return textOperators
	}
}

func (f *attributeField) Options() []Option {
	if f.attr.Type != catalog.AttributeTypeSelect {
		return nil
	}
	opts := make([]Option, 0, len(f.attr.Options))
	for _, opt := range f.attr.Options {
		opts = append(opts, Option{Value: opt.ID, Label: opt.Value})
	}
	return opts
}

func (f *attributeField) EagerLoad() []string {
	return []string{"AttributeValues", "AttributeValues.Option"}
}

func (f *attributeField) Modifier() ModifierType {
	if f.attr.Type == catalog.AttributeTypeBoolean {
		return ModifierBoolean
	}
	return ModifierNone
}

// Value reads the one value row matching this attribute and resolves it
// through the channel precedence. Option references resolve to their
// display text.
func (f *attributeField) Value(p *catalog.Product, _ *identity.User) any {
	row := p.AttributeValue(f.attr.ID)
	if row == nil {
		return nil
	}
	payload := row.Payload()
	switch payload.Kind {
	case catalog.ValueKindText:
		return payload.Text
	case catalog.ValueKindNumber:
		return payload.Number
	case catalog.ValueKindBoolean:
		return payload.Boolean
	case catalog.ValueKindOption:
		if row.Option != nil {
			return row.Option.Value
		}
		if text, ok := f.options[payload.OptionID]; ok {
			return text
		}
		return nil
	default:
		return nil
	}
}

// ApplyFilter matches against the typed value-row table, constrained first
// by this attribute's id and then by the type-specific predicate. A blank
// value adds no predicate.
func (f *attributeField) ApplyFilter(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	if blank(value) {
		return tx, false
	}
	switch f.attr.Type {
	case catalog.AttributeTypeString:
		return f.applyText(tx, operator, value)
	case catalog.AttributeTypeNumber:
		return f.applyNumber(tx, operator, value)
	case catalog.AttributeTypeBoolean:
		return f.applyBoolean(tx, operator, value)
	case catalog.AttributeTypeSelect:
		return f.applySelect(tx, operator, value)
	default:
		return tx, false
	}
}

func (f *attributeField) exists(pred string) string {
	return "EXISTS (SELECT 1 FROM product_attribute_values av WHERE av.product_id = products.id AND av.attribute_id = ? AND " + pred + ")"
}

func (f *attributeField) applyText(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	s, ok := value.(string)
	if !ok {
		return tx, false
	}
	switch operator {
	case OpEquals:
		return tx.Where(f.exists("av.text_value = ?"), f.attr.ID, s), true
	case OpContains:
		return tx.Where(f.exists("av.text_value LIKE ?"), f.attr.ID, "%"+s+"%"), true
	case OpNotContains:
		return tx.Where(f.exists("av.text_value NOT LIKE ?"), f.attr.ID, "%"+s+"%"), true
	case OpStartsWith:
		return tx.Where(f.exists("av.text_value LIKE ?"), f.attr.ID, s+"%"), true
	default:
		return tx, false
	}
}

func (f *attributeField) applyNumber(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	if operator == OpBetween {
		low, high, ok := betweenPair(value)
		if !ok {
			return tx, false
		}
		return tx.Where(f.exists("av.number_value BETWEEN ? AND ?"), f.attr.ID, low, high), true
	}
	switch operator {
	case OpEquals, OpGreater, OpLess, OpGreaterEq, OpLessEq:
		return tx.Where(f.exists("av.number_value "+operator+" ?"), f.attr.ID, value), true
	default:
		return tx, false
	}
}

func (f *attributeField) applyBoolean(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	if operator != OpEquals {
		return tx, false
	}
	return tx.Where(f.exists("av.bool_value = ?"), f.attr.ID, truthy(value)), true
}

func (f *attributeField) applySelect(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	ids := toList(value)
	if len(ids) == 0 {
		return tx, false
	}
	switch operator {
	case OpIn:
		return tx.Where(f.exists("av.option_id IN ?"), f.attr.ID, ids), true
	case OpNotIn:
		return tx.Where("NOT "+f.exists("av.option_id IN ?"), f.attr.ID, ids), true
	default:
		return tx, false
	}
}
