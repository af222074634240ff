package catalog

import (
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AttributeType governs an attribute's filter semantics and which value
// channel its product rows populate
type AttributeType string

const (
	AttributeTypeString  AttributeType = "string"
	AttributeTypeNumber  AttributeType = "number"
	AttributeTypeBoolean AttributeType = "boolean"
	AttributeTypeSelect  AttributeType = "select"
)

// Valid reports whether the attribute type is one of the known set
func (t AttributeType) Valid() bool {
	switch t {
	case AttributeTypeString, AttributeTypeNumber, AttributeTypeBoolean, AttributeTypeSelect:
		return true
	}
	return false
}

// AttributeGroup groups user-defined attributes for display purposes
type AttributeGroup struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(128);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AttributeGroup) TableName() string {
	return "attribute_groups"
}

// Attribute is a user-defined product property. Its declared type decides
// how product values are stored and how the property can be filtered.
type Attribute struct {
	shared.BaseEntity
	Name      string        `gorm:"type:varchar(128);not null"`
	Unit      string        `gorm:"type:varchar(32)"`
	Type      AttributeType `gorm:"type:varchar(16);not null;default:'string'"`
	GroupID   *uint         `gorm:"index"`
	Group     *AttributeGroup
	SortOrder int               `gorm:"not null;default:0"`
	Options   []AttributeOption `gorm:"foreignKey:AttributeID"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// NewAttribute creates a new attribute of the given type
func NewAttribute(name string, typ AttributeType) (*Attribute, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if !typ.Valid() {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_TYPE", "Unknown attribute type")
	}
	return &Attribute{Name: name, Type: typ}, nil
}

// Option returns the predefined option with the given id, or nil
func (a *Attribute) Option(id uint) *AttributeOption {
	for i := range a.Options {
		if a.Options[i].ID == id {
			return &a.Options[i]
		}
	}
	return nil
}

// AttributeOption is one predefined value of a select-typed attribute
type AttributeOption struct {
	shared.BaseEntity
	AttributeID uint   `gorm:"index;not null"`
	Value       string `gorm:"type:varchar(255);not null"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AttributeOption) TableName() string {
	return "attribute_options"
}

// ValueKind tags which channel of a product attribute row is populated
type ValueKind int

const (
	ValueKindNone ValueKind = iota
	ValueKindText
	ValueKindNumber
	ValueKindBoolean
	ValueKindOption
)

// AttributeValuePayload is the tagged value carried by one product attribute
// row. Exactly one channel is meaningful; the kind says which.
type AttributeValuePayload struct {
	Kind     ValueKind
	Text     string
	Number   decimal.Decimal
	Boolean  bool
	OptionID uint
}

// ProductAttributeValue associates a product with a typed attribute value.
// The storage keeps four nullable channels; reads resolve them through the
// fixed precedence text, number, boolean, option reference. Rows with more
// than one channel set are a data-integrity fault and the precedence order
// decides which channel wins.
type ProductAttributeValue struct {
	shared.BaseEntity
	ProductID   uint `gorm:"index:idx_pav_product_attribute,unique,priority:1;not null"`
	AttributeID uint `gorm:"index:idx_pav_product_attribute,unique,priority:2;not null"`
	TextValue   *string          `gorm:"type:text"`
	NumberValue *decimal.Decimal `gorm:"type:decimal(18,4)"`
	BoolValue   *bool
	OptionID    *uint `gorm:"index"`
	Option      *AttributeOption
}

// TableName returns the table name for GORM
func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}

// Payload resolves the populated channel using the read precedence order
func (v *ProductAttributeValue) Payload() AttributeValuePayload {
	switch {
	case v.TextValue != nil:
		return AttributeValuePayload{Kind: ValueKindText, Text: *v.TextValue}
	case v.NumberValue != nil:
		return AttributeValuePayload{Kind: ValueKindNumber, Number: *v.NumberValue}
	case v.BoolValue != nil:
		return AttributeValuePayload{Kind: ValueKindBoolean, Boolean: *v.BoolValue}
	case v.OptionID != nil:
		return AttributeValuePayload{Kind: ValueKindOption, OptionID: *v.OptionID}
	default:
		return AttributeValuePayload{Kind: ValueKindNone}
	}
}

// SetText sets the free-text channel and clears the others
func (v *ProductAttributeValue) SetText(text string) {
	v.clear()
	v.TextValue = &text
}

// SetNumber sets the numeric channel and clears the others
func (v *ProductAttributeValue) SetNumber(n decimal.Decimal) {
	v.clear()
	v.NumberValue = &n
}

// SetBoolean sets the boolean channel and clears the others
func (v *ProductAttributeValue) SetBoolean(b bool) {
	v.clear()
	v.BoolValue = &b
}

// SetOption sets the predefined-option channel and clears the others
func (v *ProductAttributeValue) SetOption(optionID uint) {
	v.clear()
	v.OptionID = &optionID
}

func (v *ProductAttributeValue) clear() {
	v.TextValue = nil
	v.NumberValue = nil
	v.BoolValue = nil
	v.OptionID = nil
	v.Option = nil
}
