package catalog

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uint) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// ReplaceCategories replaces the product's category links
	ReplaceCategories(ctx context.Context, product *Product, categoryIDs []uint) error

	// ReplaceCertificates replaces the product's certificate links
	ReplaceCertificates(ctx context.Context, product *Product, certificateIDs []uint) error

	// UpsertAttributeValue creates or replaces the product's value row for one attribute
	UpsertAttributeValue(ctx context.Context, value *ProductAttributeValue) error

	// DeleteAttributeValue removes the product's value row for one attribute
	DeleteAttributeValue(ctx context.Context, productID, attributeID uint) error
}

// AttributeRepository provides attribute metadata with options and groups
type AttributeRepository interface {
	// FindByID finds an attribute with its options and group
	FindByID(ctx context.Context, id uint) (*Attribute, error)

	// FindAll returns every attribute with its ordered options and group,
	// ordered by group and sort order. The field registry boots from this.
	FindAll(ctx context.Context) ([]Attribute, error)

	// Save creates or updates an attribute
	Save(ctx context.Context, attribute *Attribute) error

	// Delete deletes an attribute and its options
	Delete(ctx context.Context, id uint) error

	// HasValues reports whether any product carries a value for the attribute
	HasValues(ctx context.Context, id uint) (bool, error)

	// ReplaceOptions replaces the attribute's predefined options
	ReplaceOptions(ctx context.Context, attribute *Attribute, options []AttributeOption) error
}

// StockRepository persists per-warehouse stock quantities
type StockRepository interface {
	// FindByProduct returns all stock rows of one product with warehouses
	FindByProduct(ctx context.Context, productID uint) ([]ProductStock, error)

	// Upsert creates or replaces the quantity of one product in one warehouse
	Upsert(ctx context.Context, stock *ProductStock) error

	// Delete removes the stock row of one product in one warehouse
	Delete(ctx context.Context, productID, warehouseID uint) error
}

// BrandRepository persists brands
type BrandRepository interface {
	shared.Repository[Brand]
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// CategoryRepository persists catalog categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindChildren(ctx context.Context, parentID uint) ([]Category, error)
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	shared.Repository[Warehouse]
}

// CertificateRepository persists certificates
type CertificateRepository interface {
	shared.Repository[Certificate]
}

// ProductModelRepository persists product model lines
type ProductModelRepository interface {
	shared.Repository[ProductModel]
}

// RegionRepository persists regions
type RegionRepository interface {
	shared.Repository[Region]
}
