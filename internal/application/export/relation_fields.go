package export

import (
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// relationField is a filter-only facet over either a direct foreign-key
// column or a many-to-many join table. It never exports a value; exportable
// counterparts (brand.name, categories, ...) read through the relation.
type relationField struct {
	key        string
	name       string
	fkColumn   string // FK mode when set
	joinTable  string // m2m mode otherwise
	joinColumn string
}

func newRelationColumnField(key, name, fkColumn string) *relationField {
	return &relationField{key: key, name: name, fkColumn: fkColumn}
}

func newRelationJoinField(key, name, joinTable, joinColumn string) *relationField {
	return &relationField{key: key, name: name, joinTable: joinTable, joinColumn: joinColumn}
}

func (f *relationField) Key() string            { return f.key }
func (f *relationField) Name() string           { return f.name }
func (f *relationField) Group() string          { return groupRelations }
func (f *relationField) FilterGroup() string    { return groupRelations }
func (f *relationField) Filterable() bool       { return true }
func (f *relationField) Exportable() bool       { return false }
func (f *relationField) FilterType() FilterType { return FilterTypeRelation }
func (f *relationField) Operators() []string    { return relationOperators }
func (f *relationField) Options() []Option      { return nil }
func (f *relationField) EagerLoad() []string    { return nil }
func (f *relationField) Modifier() ModifierType { return ModifierNone }
func (f *relationField) Dynamic() bool          { return false }

func (f *relationField) Value(_ *catalog.Product, _ *identity.User) any { return nil }

// ApplyFilter adds an id-set membership predicate. not_in is a negated
// existence check so products with zero related rows also match.
func (f *relationField) ApplyFilter(tx *gorm.DB, operator string, value any) (*gorm.DB, bool) {
	ids := toList(value)
	if len(ids) == 0 {
		return tx, false
	}

	if f.fkColumn != "" {
		switch operator {
		case OpIn:
			return tx.Where(f.fkColumn+" IN ?", ids), true
		case OpNotIn:
			return tx.Where("("+f.fkColumn+" IS NULL OR "+f.fkColumn+" NOT IN ?)", ids), true
		default:
			return tx, false
		}
	}

	exists := "EXISTS (SELECT 1 FROM " + f.joinTable + " rel WHERE rel.product_id = products.id AND rel." + f.joinColumn + " IN ?)"
	switch operator {
	case OpIn:
		return tx.Where(exists, ids), true
	case OpNotIn:
		return tx.Where("NOT "+exists, ids), true
	default:
		return tx, false
	}
}
