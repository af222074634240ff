package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID with its relations hydrated
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.withRelations(ctx).First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.withRelations(ctx).
		Where("products.sku = ?", strings.ToUpper(sku)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.applyFilter(ctx, filter).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).
		Omit("Categories", "Certificates", "Stocks", "AttributeValues", "Brand", "Model").
		Save(product).Error
}

// Delete deletes a product together with its links and attribute values
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_certificates WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.ProductStock{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.ProductAttributeValue{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var total int64
	if err := r.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("sku = ?", strings.ToUpper(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceCategories replaces the product's category links
func (r *GormProductRepository) ReplaceCategories(ctx context.Context, product *catalog.Product, categoryIDs []uint) error {
	categories := make([]catalog.Category, len(categoryIDs))
	for i, id := range categoryIDs {
		categories[i] = catalog.Category{BaseEntity: shared.BaseEntity{ID: id}}
	}
	return r.db.WithContext(ctx).Model(product).Association("Categories").Replace(categories)
}

// ReplaceCertificates replaces the product's certificate links
func (r *GormProductRepository) ReplaceCertificates(ctx context.Context, product *catalog.Product, certificateIDs []uint) error {
	certificates := make([]catalog.Certificate, len(certificateIDs))
	for i, id := range certificateIDs {
		certificates[i] = catalog.Certificate{BaseEntity: shared.BaseEntity{ID: id}}
	}
	return r.db.WithContext(ctx).Model(product).Association("Certificates").Replace(certificates)
}

// UpsertAttributeValue creates or replaces the product's value row for one attribute
func (r *GormProductRepository) UpsertAttributeValue(ctx context.Context, value *catalog.ProductAttributeValue) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "attribute_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"text_value", "number_value", "bool_value", "option_id", "updated_at",
		}),
	}).Create(value).Error
}

// DeleteAttributeValue removes the product's value row for one attribute
func (r *GormProductRepository) DeleteAttributeValue(ctx context.Context, productID, attributeID uint) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.ProductAttributeValue{}, "product_id = ? AND attribute_id = ?", productID, attributeID).Error
}

func (r *GormProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Model").
		Preload("Categories").
		Preload("Certificates").
		Preload("Stocks.Warehouse").
		Preload("AttributeValues.Option")
}

func (r *GormProductRepository) applyFilter(ctx context.Context, filter shared.Filter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&catalog.Product{})
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		tx = tx.Where("products.name LIKE ? OR products.sku LIKE ?", term, term)
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	dir := "asc"
	if filter.OrderDir == "desc" {
		dir = "desc"
	}
	return tx.Order("products." + orderBy + " " + dir)
}
