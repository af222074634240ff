package export

import (
	"strings"

	"github.com/shopadmin/backend/internal/domain/catalog"
)

// Listing group labels for dynamic attributes. Filter listings keep each
// attribute group, prefixed so static and dynamic namespaces never merge;
// export listings collapse every attribute into one group.
const (
	attributeFilterGroupPrefix = "Attributes: "
	attributeExportGroup       = "Attributes"
)

// Registry owns the full set of fields for one request: the fixed static
// list plus one dynamic field per attribute. It is built once per
// invocation and never cached across requests, so attribute type changes
// take effect on the next boot.
type Registry struct {
	fields []Field
	byKey  map[string]Field
}

// NewRegistry materializes the registry from the fixed static field list
// and the given attribute metadata. Construction is the only mutation the
// registry ever sees.
func NewRegistry(attrs []catalog.Attribute) *Registry {
	r := &Registry{byKey: make(map[string]Field)}
	for _, f := range staticFields() {
		r.add(f)
	}
	for _, attr := range attrs {
		r.add(newAttributeField(attr))
	}
	return r
}

func (r *Registry) add(f Field) {
	if _, dup := r.byKey[f.Key()]; dup {
		return
	}
	r.fields = append(r.fields, f)
	r.byKey[f.Key()] = f
}

// Resolve returns the field for a key, or nil. Exact match wins; an
// "attribute.<id>" export key falls back to the "attr.<id>" filter key.
// The bare legacy key "attribute" resolves to nothing and must be
// rewritten by the caller before resolution.
func (r *Registry) Resolve(key string) Field {
	if f, ok := r.byKey[key]; ok {
		return f
	}
	if rest, ok := strings.CutPrefix(key, exportKeyPrefix); ok {
		if f, ok := r.byKey[filterKeyPrefix+rest]; ok {
			return f
		}
	}
	return nil
}

// FieldView is the UI-facing description of one field
type FieldView struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Type      FilterType   `json:"type,omitempty"`
	Operators []string     `json:"operators,omitempty"`
	Options   []Option     `json:"options,omitempty"`
	Modifier  ModifierType `json:"modifier,omitempty"`
}

// GroupView is an ordered group of fields in a listing
type GroupView struct {
	Label  string      `json:"label"`
	Fields []FieldView `json:"fields"`
}

// AvailableFilters lists filterable fields grouped by filter group.
// Dynamic attribute groups are prefixed so they never merge with static
// groups in the listing.
func (r *Registry) AvailableFilters() []GroupView {
	return r.grouped(
		func(f Field) bool { return f.Filterable() && f.FilterType() != FilterTypeNone },
		func(f Field) string {
			if f.Dynamic() {
				return attributeFilterGroupPrefix + f.FilterGroup()
			}
			return f.FilterGroup()
		},
		func(f Field) FieldView {
			return FieldView{
				Key:       f.Key(),
				Label:     f.Name(),
				Type:      f.FilterType(),
				Operators: f.Operators(),
				Options:   f.Options(),
			}
		},
	)
}

// AvailableFields lists exportable fields grouped by display group, with
// every dynamic attribute collapsed into one fixed group. Dynamic fields
// are listed under their export key.
func (r *Registry) AvailableFields() []GroupView {
	return r.grouped(
		func(f Field) bool { return f.Exportable() },
		func(f Field) string {
			if f.Dynamic() {
				return attributeExportGroup
			}
			return f.Group()
		},
		func(f Field) FieldView {
			key := f.Key()
			if af, ok := f.(*attributeField); ok {
				key = af.ExportKey()
			}
			return FieldView{
				Key:      key,
				Label:    f.Name(),
				Modifier: f.Modifier(),
			}
		},
	)
}

func (r *Registry) grouped(include func(Field) bool, groupOf func(Field) string, view func(Field) FieldView) []GroupView {
	var groups []GroupView
	index := make(map[string]int)
	for _, f := range r.fields {
		if !include(f) {
			continue
		}
		label := groupOf(f)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, GroupView{Label: label})
		}
		groups[i].Fields = append(groups[i].Fields, view(f))
	}
	return groups
}

// EagerLoadFor unions the eager-load relation sets of the given keys so
// the product query preloads everything once. Unresolvable keys are
// silently skipped.
func (r *Registry) EagerLoadFor(keys []string) []string {
	var relations []string
	seen := make(map[string]bool)
	for _, key := range keys {
		f := r.Resolve(key)
		if f == nil {
			continue
		}
		for _, rel := range f.EagerLoad() {
			if !seen[rel] {
				seen[rel] = true
				relations = append(relations, rel)
			}
		}
	}
	return relations
}

// LabelsFor maps each key to its display name. Unresolvable keys fall back
// to the raw key string, never to an omitted entry.
func (r *Registry) LabelsFor(keys []string) map[string]string {
	labels := make(map[string]string, len(keys))
	for _, key := range keys {
		if f := r.Resolve(key); f != nil {
			labels[key] = f.Name()
		} else {
			labels[key] = key
		}
	}
	return labels
}
