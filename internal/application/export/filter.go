package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Condition is one filter leaf: field, operator and value
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Group combines leaves and nested groups with one and/or combinator
type Group struct {
	Logic      string
	Conditions []Node
}

// Node is a tagged filter AST node: exactly one of Leaf or Group is set
type Node struct {
	Leaf  *Condition
	Group *Group
}

// ParseFilterInput decodes the filter JSON. It accepts either the flat
// leaf list form, combined with implicit AND, or the recursive
// {logic, conditions} group form. Empty input yields an empty group.
func ParseFilterInput(raw []byte) (*Group, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return &Group{}, nil
	}

	if raw[0] == '[' {
		var leaves []Condition
		if err := json.Unmarshal(raw, &leaves); err != nil {
			return nil, fmt.Errorf("parse filter list: %w", err)
		}
		g := &Group{Logic: "and"}
		for i := range leaves {
			leaf := leaves[i]
			g.Conditions = append(g.Conditions, Node{Leaf: &leaf})
		}
		return g, nil
	}

	return parseGroup(raw)
}

func parseGroup(raw []byte) (*Group, error) {
	var body struct {
		Logic      string            `json:"logic"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("parse filter group: %w", err)
	}

	g := &Group{Logic: body.Logic}
	for _, rawCond := range body.Conditions {
		node, err := parseNode(rawCond)
		if err != nil {
			return nil, err
		}
		g.Conditions = append(g.Conditions, node)
	}
	return g, nil
}

func parseNode(raw json.RawMessage) (Node, error) {
	var probe struct {
		Type       string          `json:"type"`
		Conditions json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Node{}, fmt.Errorf("parse filter condition: %w", err)
	}

	if probe.Type == "group" || len(probe.Conditions) > 0 {
		g, err := parseGroup(raw)
		if err != nil {
			return Node{}, err
		}
		return Node{Group: g}, nil
	}

	var leaf Condition
	if err := json.Unmarshal(raw, &leaf); err != nil {
		return Node{}, fmt.Errorf("parse filter condition: %w", err)
	}
	return Node{Leaf: &leaf}, nil
}

// Compiler turns a filter AST into query predicates by resolving each leaf
// through the registry. Malformed or unresolvable leaves contribute
// nothing; an empty group is the neutral element.
type Compiler struct {
	registry *Registry
}

// NewCompiler creates a compiler bound to one registry
func NewCompiler(registry *Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Apply adds the group's predicate tree to the product query
func (c *Compiler) Apply(tx *gorm.DB, group *Group) *gorm.DB {
	if group == nil {
		return tx
	}
	cond, ok := c.compileGroup(tx, group)
	if !ok {
		return tx
	}
	return tx.Where(cond)
}

// compileGroup builds one grouped predicate scope. The and/or combinator
// applies uniformly to leaves and nested groups under the same parent.
func (c *Compiler) compileGroup(tx *gorm.DB, g *Group) (*gorm.DB, bool) {
	logic := strings.ToLower(g.Logic)
	if logic == "" {
		logic = "and"
	}

	scope := c.freshScope(tx)
	applied := false
	for _, node := range g.Conditions {
		var cond *gorm.DB
		var ok bool
		switch {
		case node.Group != nil:
			cond, ok = c.compileGroup(tx, node.Group)
		case node.Leaf != nil:
			cond, ok = c.compileLeaf(tx, *node.Leaf)
		}
		if !ok {
			continue
		}
		if logic == "or" {
			scope = scope.Or(cond)
		} else {
			scope = scope.Where(cond)
		}
		applied = true
	}
	return scope, applied
}

func (c *Compiler) compileLeaf(tx *gorm.DB, leaf Condition) (*gorm.DB, bool) {
	leaf = rewriteLegacyAttribute(leaf)
	if leaf.Field == "" || leaf.Operator == "" {
		return nil, false
	}
	field := c.registry.Resolve(leaf.Field)
	if field == nil || !field.Filterable() {
		return nil, false
	}
	return field.ApplyFilter(c.freshScope(tx), leaf.Operator, leaf.Value)
}

func (c *Compiler) freshScope(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).Model(&catalog.Product{})
}

// rewriteLegacyAttribute translates the pre-namespaced single-pair
// attribute filter, a leaf keyed literally "attribute" whose value object
// carries attribute_id, into the attr.<id> form. Leaves that do not match
// the expected shape pass through untouched and later resolve to nothing.
func rewriteLegacyAttribute(leaf Condition) Condition {
	if leaf.Field != "attribute" {
		return leaf
	}
	body, ok := leaf.Value.(map[string]any)
	if !ok {
		return leaf
	}
	id, ok := toUint(body["attribute_id"])
	if !ok {
		return leaf
	}
	leaf.Field = fmt.Sprintf("%s%d", filterKeyPrefix, id)
	leaf.Value = body["value"]
	return leaf
}
