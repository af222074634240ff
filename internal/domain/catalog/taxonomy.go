package catalog

import (
	"strings"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Brand is a product manufacturer or trademark
type Brand struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(128);not null;uniqueIndex"`
	Slug      string `gorm:"type:varchar(128);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// ProductModel is a manufacturer series/model line within a brand
type ProductModel struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(128);not null"`
	BrandID *uint  `gorm:"index"`
	Brand   *Brand
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "product_models"
}

// Category is a node of the catalog category tree
type Category struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(128);not null"`
	Slug      string `gorm:"type:varchar(128);not null;uniqueIndex"`
	ParentID  *uint  `gorm:"index"`
	SortOrder int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// Certificate is a compliance or quality certificate linkable to products
type Certificate struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(128);not null"`
	Number string `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (Certificate) TableName() string {
	return "certificates"
}

// Region groups warehouses and buyers for regional pricing and availability
type Region struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(128);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Region) TableName() string {
	return "regions"
}

// Warehouse is a physical stock location
type Warehouse struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(128);not null"`
	RegionID uint   `gorm:"index;not null"`
	Region   *Region
	Address  string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// ProductStock is the quantity of one product held in one warehouse
type ProductStock struct {
	shared.BaseEntity
	ProductID   uint `gorm:"index:idx_stock_product_warehouse,unique,priority:1;not null"`
	WarehouseID uint `gorm:"index:idx_stock_product_warehouse,unique,priority:2;not null"`
	Warehouse   *Warehouse
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductStock) TableName() string {
	return "product_stocks"
}

// Slugify derives a URL-safe slug from a display name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '_', r == '-':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
