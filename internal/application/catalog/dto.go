package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required,min=1,max=64"`
	Name          string           `json:"name" binding:"required,min=1,max=255"`
	Description   string           `json:"description" binding:"max=4000"`
	Barcode       string           `json:"barcode" binding:"max=64"`
	Unit          string           `json:"unit" binding:"max=20"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Weight        *decimal.Decimal `json:"weight"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	IsNew         bool             `json:"is_new"`
	IsFeatured    bool             `json:"is_featured"`
	SortOrder     *int             `json:"sort_order"`
	BrandID       *uint            `json:"brand_id"`
	ModelID       *uint            `json:"model_id"`
	CategoryIDs   []uint           `json:"category_ids"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string          `json:"description" binding:"omitempty,max=4000"`
	Barcode       *string          `json:"barcode" binding:"omitempty,max=64"`
	Unit          *string          `json:"unit" binding:"omitempty,max=20"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	ClearSale     bool             `json:"clear_sale_price"`
	Weight        *decimal.Decimal `json:"weight"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	IsActive      *bool            `json:"is_active"`
	IsNew         *bool            `json:"is_new"`
	IsFeatured    *bool            `json:"is_featured"`
	SortOrder     *int             `json:"sort_order"`
	BrandID       *uint            `json:"brand_id"`
	ModelID       *uint            `json:"model_id"`
	CategoryIDs   []uint           `json:"category_ids"`
}

// SetAttributeValueRequest represents a request to set one typed attribute
// value on a product. Exactly one of the value fields must be provided,
// matching the attribute's declared type.
type SetAttributeValueRequest struct {
	TextValue   *string          `json:"text_value"`
	NumberValue *decimal.Decimal `json:"number_value"`
	BoolValue   *bool            `json:"bool_value"`
	OptionID    *uint            `json:"option_id"`
}

// SetCertificatesRequest replaces a product's certificate links
type SetCertificatesRequest struct {
	CertificateIDs []uint `json:"certificate_ids"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uint                     `json:"id"`
	SKU           string                   `json:"sku"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Barcode       string                   `json:"barcode"`
	Unit          string                   `json:"unit"`
	BasePrice     decimal.Decimal          `json:"base_price"`
	PurchasePrice decimal.Decimal          `json:"purchase_price"`
	SalePrice     *decimal.Decimal         `json:"sale_price"`
	Weight        decimal.Decimal          `json:"weight"`
	MinStock      decimal.Decimal          `json:"min_stock"`
	IsActive      bool                     `json:"is_active"`
	IsNew         bool                     `json:"is_new"`
	IsFeatured    bool                     `json:"is_featured"`
	SortOrder     int                      `json:"sort_order"`
	BrandID       *uint                    `json:"brand_id"`
	BrandName     string                   `json:"brand_name,omitempty"`
	ModelID       *uint                    `json:"model_id"`
	ModelName     string                   `json:"model_name,omitempty"`
	Categories    []NamedRef               `json:"categories"`
	Certificates  []NamedRef               `json:"certificates"`
	Attributes    []AttributeValueResponse `json:"attributes"`
	TotalStock    decimal.Decimal          `json:"total_stock"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID        uint            `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode"`
	BasePrice decimal.Decimal `json:"base_price"`
	IsActive  bool            `json:"is_active"`
	SortOrder int             `json:"sort_order"`
	CreatedAt time.Time       `json:"created_at"`
}

// NamedRef is an id/name pair for linked entities
type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AttributeValueResponse is one resolved attribute value on a product
type AttributeValueResponse struct {
	AttributeID uint             `json:"attribute_id"`
	TextValue   *string          `json:"text_value,omitempty"`
	NumberValue *decimal.Decimal `json:"number_value,omitempty"`
	BoolValue   *bool            `json:"bool_value,omitempty"`
	OptionID    *uint            `json:"option_id,omitempty"`
	OptionText  string           `json:"option_text,omitempty"`
}

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=128"`
	Unit      string   `json:"unit" binding:"max=32"`
	Type      string   `json:"type" binding:"required,oneof=string number boolean select"`
	GroupID   *uint    `json:"group_id"`
	SortOrder *int     `json:"sort_order"`
	Options   []string `json:"options"`
}

// UpdateAttributeRequest represents a request to update an attribute.
// The declared type is immutable once products carry values.
type UpdateAttributeRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=128"`
	Unit      *string  `json:"unit" binding:"omitempty,max=32"`
	GroupID   *uint    `json:"group_id"`
	SortOrder *int     `json:"sort_order"`
	Options   []string `json:"options"`
}

// AttributeResponse represents an attribute in API responses
type AttributeResponse struct {
	ID        uint                      `json:"id"`
	Name      string                    `json:"name"`
	Unit      string                    `json:"unit"`
	Type      string                    `json:"type"`
	GroupID   *uint                     `json:"group_id"`
	GroupName string                    `json:"group_name,omitempty"`
	SortOrder int                       `json:"sort_order"`
	Options   []AttributeOptionResponse `json:"options"`
}

// AttributeOptionResponse is one predefined option of a select attribute
type AttributeOptionResponse struct {
	ID        uint   `json:"id"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		Unit:          p.Unit,
		BasePrice:     p.BasePrice,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Weight:        p.Weight,
		MinStock:      p.MinStock,
		IsActive:      p.IsActive,
		IsNew:         p.IsNew,
		IsFeatured:    p.IsFeatured,
		SortOrder:     p.SortOrder,
		BrandID:       p.BrandID,
		ModelID:       p.ModelID,
		Categories:    make([]NamedRef, 0, len(p.Categories)),
		Certificates:  make([]NamedRef, 0, len(p.Certificates)),
		Attributes:    make([]AttributeValueResponse, 0, len(p.AttributeValues)),
		TotalStock:    p.TotalStock(nil),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Brand != nil {
		resp.BrandName = p.Brand.Name
	}
	if p.Model != nil {
		resp.ModelName = p.Model.Name
	}
	for _, c := range p.Categories {
		resp.Categories = append(resp.Categories, NamedRef{ID: c.ID, Name: c.Name})
	}
	for _, c := range p.Certificates {
		resp.Certificates = append(resp.Certificates, NamedRef{ID: c.ID, Name: c.Name})
	}
	for i := range p.AttributeValues {
		v := &p.AttributeValues[i]
		av := AttributeValueResponse{
			AttributeID: v.AttributeID,
			TextValue:   v.TextValue,
			NumberValue: v.NumberValue,
			BoolValue:   v.BoolValue,
			OptionID:    v.OptionID,
		}
		if v.Option != nil {
			av.OptionText = v.Option.Value
		}
		resp.Attributes = append(resp.Attributes, av)
	}
	return resp
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Barcode:   p.Barcode,
		BasePrice: p.BasePrice,
		IsActive:  p.IsActive,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
	}
}

// ToAttributeResponse converts a domain Attribute to AttributeResponse
func ToAttributeResponse(a *catalog.Attribute) AttributeResponse {
	resp := AttributeResponse{
		ID:        a.ID,
		Name:      a.Name,
		Unit:      a.Unit,
		Type:      string(a.Type),
		GroupID:   a.GroupID,
		SortOrder: a.SortOrder,
		Options:   make([]AttributeOptionResponse, 0, len(a.Options)),
	}
	if a.Group != nil {
		resp.GroupName = a.Group.Name
	}
	for _, o := range a.Options {
		resp.Options = append(resp.Options, AttributeOptionResponse{
			ID:        o.ID,
			Value:     o.Value,
			SortOrder: o.SortOrder,
		})
	}
	return resp
}
