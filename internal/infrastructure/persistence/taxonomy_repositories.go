package persistence

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormBrandRepository implements catalog.BrandRepository
type GormBrandRepository struct {
	*GormRepository[catalog.Brand]
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{
		GormRepository: NewGormRepository[catalog.Brand](db, "name"),
		db:             db,
	}
}

// ExistsByName checks if a brand with the given name exists
func (r *GormBrandRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Brand{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormCategoryRepository implements catalog.CategoryRepository
type GormCategoryRepository struct {
	*GormRepository[catalog.Category]
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		GormRepository: NewGormRepository[catalog.Category](db, "name"),
		db:             db,
	}
}

// FindChildren finds the direct children of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uint) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// NewGormWarehouseRepository creates a warehouse repository
func NewGormWarehouseRepository(db *gorm.DB) catalog.WarehouseRepository {
	return NewGormRepository[catalog.Warehouse](db, "name")
}

// NewGormCertificateRepository creates a certificate repository
func NewGormCertificateRepository(db *gorm.DB) catalog.CertificateRepository {
	return NewGormRepository[catalog.Certificate](db, "name")
}

// NewGormProductModelRepository creates a product model repository
func NewGormProductModelRepository(db *gorm.DB) catalog.ProductModelRepository {
	return NewGormRepository[catalog.ProductModel](db, "name")
}

// NewGormRegionRepository creates a region repository
func NewGormRegionRepository(db *gorm.DB) catalog.RegionRepository {
	return NewGormRepository[catalog.Region](db, "name")
}
