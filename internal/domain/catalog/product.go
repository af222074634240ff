package catalog

import (
	"strings"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product/SKU.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseEntity
	Name          string           `gorm:"type:varchar(255);not null"`
	SKU           string           `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Barcode       string           `gorm:"type:varchar(64);index"`
	Description   string           `gorm:"type:text"`
	Unit          string           `gorm:"type:varchar(20);not null;default:'pcs'"`
	BasePrice     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	SalePrice     *decimal.Decimal `gorm:"type:decimal(18,2)"` // promotional price, overrides BasePrice when set
	Weight        decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	MinStock      decimal.Decimal  `gorm:"type:decimal(18,3);not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
	IsNew         bool             `gorm:"not null;default:false"`
	IsFeatured    bool             `gorm:"not null;default:false"`
	SortOrder     int              `gorm:"not null;default:0"`
	BrandID       *uint            `gorm:"index"`
	Brand         *Brand
	ModelID       *uint `gorm:"index"`
	Model         *ProductModel
	Categories      []Category              `gorm:"many2many:product_categories"`
	Certificates    []Certificate           `gorm:"many2many:product_certificates"`
	Stocks          []ProductStock          `gorm:"foreignKey:ProductID"`
	AttributeValues []ProductAttributeValue `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(sku, name string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		SKU:           strings.ToUpper(sku),
		Name:          name,
		Unit:          "pcs",
		BasePrice:     decimal.Zero,
		PurchasePrice: decimal.Zero,
		Weight:        decimal.Zero,
		MinStock:      decimal.Zero,
		IsActive:      true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrices sets the purchase and base selling price
func (p *Product) SetPrices(purchase, base decimal.Decimal) error {
	if purchase.IsNegative() || base.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchase
	p.BasePrice = base
	p.UpdatedAt = time.Now()
	return nil
}

// SetSalePrice sets or clears the promotional price
func (p *Product) SetSalePrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.SalePrice = price
	p.UpdatedAt = time.Now()
	return nil
}

// Activate makes the product visible in the catalog
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the catalog
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// EffectivePrice returns the promotional price when set, the base price otherwise
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}

// TotalStock sums stock quantities across warehouses. When regionID is
// non-nil only warehouses of that region are counted; stock rows must have
// their Warehouse preloaded for the region restriction to apply.
func (p *Product) TotalStock(regionID *uint) decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.Stocks {
		if regionID != nil {
			if s.Warehouse == nil || s.Warehouse.RegionID != *regionID {
				continue
			}
		}
		total = total.Add(s.Quantity)
	}
	return total
}

// CategoryNames returns the names of all linked categories joined by ", "
func (p *Product) CategoryNames() string {
	return joinNames(len(p.Categories), func(i int) string { return p.Categories[i].Name })
}

// CertificateNames returns the names of all linked certificates joined by ", "
func (p *Product) CertificateNames() string {
	return joinNames(len(p.Certificates), func(i int) string { return p.Certificates[i].Name })
}

// WarehouseNames returns the names of warehouses holding stock, joined by ", "
func (p *Product) WarehouseNames() string {
	names := make([]string, 0, len(p.Stocks))
	for _, s := range p.Stocks {
		if s.Warehouse != nil {
			names = append(names, s.Warehouse.Name)
		}
	}
	return strings.Join(names, ", ")
}

// AttributeValue returns the value row for the given attribute, or nil
func (p *Product) AttributeValue(attributeID uint) *ProductAttributeValue {
	for i := range p.AttributeValues {
		if p.AttributeValues[i].AttributeID == attributeID {
			return &p.AttributeValues[i]
		}
	}
	return nil
}

func joinNames(n int, name func(int) string) string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = name(i)
	}
	return strings.Join(names, ", ")
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 64 characters")
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	return nil
}
