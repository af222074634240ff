package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/identity"
)

// Boolean modifier default labels
const (
	defaultTrueLabel  = "Да"
	defaultFalseLabel = "Нет"
)

// defaultMultiValueSeparator rejoins multi-value strings when the caller
// does not supply one
const defaultMultiValueSeparator = ", "

// FieldSelection is one requested export column: a field key with an
// optional label override and a field-specific modifier option bag.
type FieldSelection struct {
	Key       string
	Label     string
	Modifiers map[string]any
}

// ParseFieldSelection decodes the export field list. Each entry is either
// a bare key string or a {key, label?, modifiers?} object; order defines
// output column order.
func ParseFieldSelection(raw []byte) ([]FieldSelection, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse field selection: %w", err)
	}

	selections := make([]FieldSelection, 0, len(entries))
	for _, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) > 0 && entry[0] == '"' {
			var key string
			if err := json.Unmarshal(entry, &key); err != nil {
				return nil, fmt.Errorf("parse field selection: %w", err)
			}
			selections = append(selections, FieldSelection{Key: key})
			continue
		}
		var obj struct {
			Key       string         `json:"key"`
			Label     string         `json:"label"`
			Modifiers map[string]any `json:"modifiers"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, fmt.Errorf("parse field selection: %w", err)
		}
		if obj.Key == "" {
			return nil, fmt.Errorf("parse field selection: %w", errors.New("entry without key"))
		}
		selections = append(selections, FieldSelection{Key: obj.Key, Label: obj.Label, Modifiers: obj.Modifiers})
	}
	return selections, nil
}

// Keys returns the selection keys in order
func Keys(selections []FieldSelection) []string {
	keys := make([]string, len(selections))
	for i, sel := range selections {
		keys[i] = sel.Key
	}
	return keys
}

// Column is one ordered output column: key plus resolved header label
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Extractor maps hydrated products through resolved fields and modifiers
// into row dictionaries. It owns a private currency memo that lives for
// exactly one export run; no state outlives the run.
type Extractor struct {
	registry   *Registry
	currencies finance.CurrencyRepository
	viewer     *identity.User
	rates      map[uint]*finance.Currency
}

// NewExtractor creates an extractor for one run. viewer may be nil for an
// unpersonalized export.
func NewExtractor(registry *Registry, currencies finance.CurrencyRepository, viewer *identity.User) *Extractor {
	return &Extractor{
		registry:   registry,
		currencies: currencies,
		viewer:     viewer,
		rates:      make(map[uint]*finance.Currency),
	}
}

// Columns resolves the header labels for a selection. Caller-supplied
// labels override registry defaults; unresolvable keys fall back to the
// raw key.
func (e *Extractor) Columns(selections []FieldSelection) []Column {
	labels := e.registry.LabelsFor(Keys(selections))
	columns := make([]Column, len(selections))
	for i, sel := range selections {
		label := sel.Label
		if label == "" {
			label = labels[sel.Key]
		}
		columns[i] = Column{Key: sel.Key, Label: label}
	}
	return columns
}

// Row extracts one output row. Unresolvable keys produce a nil value for
// their column rather than an error; duplicate keys collapse to one map
// entry carrying the last processed value.
func (e *Extractor) Row(ctx context.Context, p *catalog.Product, selections []FieldSelection) map[string]any {
	row := make(map[string]any, len(selections))
	for _, sel := range selections {
		field := e.registry.Resolve(sel.Key)
		if field == nil {
			row[sel.Key] = nil
			continue
		}
		value := field.Value(p, e.viewer)
		if field.Modifier() != ModifierNone && sel.Modifiers != nil {
			value = e.modify(ctx, field.Modifier(), value, sel.Modifiers)
		}
		row[sel.Key] = value
	}
	return row
}

func (e *Extractor) modify(ctx context.Context, kind ModifierType, value any, opts map[string]any) any {
	switch kind {
	case ModifierBoolean:
		return applyBooleanModifier(value, opts)
	case ModifierPrice:
		return e.applyPriceModifier(ctx, value, opts)
	case ModifierMultiValue:
		return applyMultiValueModifier(value, opts)
	default:
		return value
	}
}

func applyBooleanModifier(value any, opts map[string]any) any {
	trueLabel := defaultTrueLabel
	falseLabel := defaultFalseLabel
	if s, ok := opts["true_value"].(string); ok && s != "" {
		trueLabel = s
	}
	if s, ok := opts["false_value"].(string); ok && s != "" {
		falseLabel = s
	}
	if truthy(value) {
		return trueLabel
	}
	return falseLabel
}

// applyPriceModifier converts a base-currency amount into the requested
// currency. Empty raw values yield an empty string; base or unresolvable
// currencies pass the raw value through unchanged.
func (e *Extractor) applyPriceModifier(ctx context.Context, value any, opts map[string]any) any {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return ""
	}

	currencyID, ok := toUint(opts["currency_id"])
	if !ok {
		return value
	}
	currency := e.currencyFor(ctx, currencyID)
	if currency == nil || currency.IsBase {
		return value
	}
	amount, ok := toDecimal(value)
	if !ok {
		return value
	}
	return finance.Convert(amount, currency)
}

// currencyFor memoizes currency lookups for the run, including misses
func (e *Extractor) currencyFor(ctx context.Context, id uint) *finance.Currency {
	if currency, seen := e.rates[id]; seen {
		return currency
	}
	currency, err := e.currencies.FindByID(ctx, id)
	if err != nil {
		// unresolvable currencies, including lookup failures, degrade to
		// the unconverted value
		currency = nil
	}
	e.rates[id] = currency
	return currency
}

func applyMultiValueModifier(value any, opts map[string]any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	separator := defaultMultiValueSeparator
	if custom, ok := opts["separator"].(string); ok && custom != "" {
		separator = custom
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, separator)
}
