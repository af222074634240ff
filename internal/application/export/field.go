// Package export implements the product field registry and the dynamic
// filter/export engine built on top of it. A Field unifies fixed product
// columns, relation facets and user-defined attributes behind one
// filterable, exportable contract; the Registry owns the full field set for
// one request.
package export

import (
	"strconv"
	"strings"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FilterType describes the filter surface a field exposes
type FilterType string

const (
	FilterTypeNone     FilterType = ""
	FilterTypeText     FilterType = "text"
	FilterTypeNumeric  FilterType = "numeric"
	FilterTypeBoolean  FilterType = "boolean"
	FilterTypeDate     FilterType = "date"
	FilterTypeSelect   FilterType = "select"
	FilterTypeRelation FilterType = "relation"
)

// ModifierType signals which post-processing transform applies to a field's
// raw value during extraction
type ModifierType string

const (
	ModifierNone       ModifierType = ""
	ModifierPrice      ModifierType = "price"
	ModifierBoolean    ModifierType = "boolean"
	ModifierMultiValue ModifierType = "multi_value"
)

// Filter operators
const (
	OpEquals      = "="
	OpGreater     = ">"
	OpLess        = "<"
	OpGreaterEq   = ">="
	OpLessEq      = "<="
	OpBetween     = "between"
	OpContains    = "contains"
	OpNotContains = "not_contains"
	OpStartsWith  = "starts_with"
	OpIn          = "in"
	OpNotIn       = "not_in"
)

var (
	textOperators       = []string{OpEquals, OpContains, OpNotContains, OpStartsWith}
	comparableOperators = []string{OpEquals, OpGreater, OpLess, OpGreaterEq, OpLessEq, OpBetween}
	booleanOperators    = []string{OpEquals}
	relationOperators   = []string{OpIn, OpNotIn}
)

// Option is one selectable value of a select-typed field
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Field is a single unit of catalog data: it identifies itself, declares
// its filter and export capabilities, knows how to add its predicate to a
// product query and how to read its own value from a hydrated product.
// Implementations are immutable value objects owned by one Registry.
type Field interface {
	// Key is the stable identity used for filter and export resolution
	Key() string

	// Name is the display label
	Name() string

	// Group is the display group for export field listings
	Group() string

	// FilterGroup is the display group for filter listings, defaulting to Group
	FilterGroup() string

	// Filterable reports whether the field can appear in filter expressions
	Filterable() bool

	// Exportable reports whether the field can appear in export columns
	Exportable() bool

	// FilterType describes the legal filter surface; FilterTypeNone means
	// the field carries no filter semantics at all
	FilterType() FilterType

	// Operators lists the operators the field accepts
	Operators() []string

	// Options supplies value/label pairs; non-empty only for select fields
	Options() []Option

	// EagerLoad names the relations that must be preloaded before Value is called
	EagerLoad() []string

	// ApplyFilter adds the field's predicate for the operator and value to
	// the query scope. It reports false and leaves the scope untouched for
	// unknown operators or malformed values.
	ApplyFilter(tx *gorm.DB, operator string, value any) (*gorm.DB, bool)

	// Value extracts the field's raw value from one product, optionally
	// personalized for the viewing user. It returns nil when absent.
	Value(p *catalog.Product, viewer *identity.User) any

	// Modifier names the post-processing transform the extraction pipeline
	// may apply to the raw value
	Modifier() ModifierType

	// Dynamic reports whether the field is backed by a user-defined
	// attribute rather than a fixed column or relation
	Dynamic() bool
}

// truthy coerces a filter or extraction value to a boolean. JSON decoding
// yields bool, float64, string or nil here.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case decimal.Decimal:
		return !x.IsZero()
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	default:
		return true
	}
}

// toDecimal coerces a raw value to a decimal where possible
func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// toUint coerces a JSON-decoded scalar to an unsigned id
func toUint(v any) (uint, bool) {
	switch x := v.(type) {
	case float64:
		if x < 0 {
			return 0, false
		}
		return uint(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint(x), true
	case uint:
		return x, true
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}

// toList normalizes an in/not_in value to a non-empty slice. A scalar is
// treated as a single-element list; blanks are dropped.
func toList(v any) []any {
	var items []any
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		items = x
	default:
		items = []any{v}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if item == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// betweenPair extracts the inclusive [low, high] bounds of a between value.
// Anything other than a 2-element pair is malformed.
func betweenPair(v any) (any, any, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return nil, nil, false
	}
	return pair[0], pair[1], true
}

// blank reports whether a filter value carries no usable content
func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(toList(x)) == 0
	default:
		return false
	}
}
