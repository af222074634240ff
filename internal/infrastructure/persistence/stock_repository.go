package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// GormStockRepository implements catalog.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByProduct returns all stock rows of one product with warehouses
func (r *GormStockRepository) FindByProduct(ctx context.Context, productID uint) ([]catalog.ProductStock, error) {
	var stocks []catalog.ProductStock
	if err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("product_id = ?", productID).
		Order("warehouse_id").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Upsert creates or replaces the quantity of one product in one warehouse
func (r *GormStockRepository) Upsert(ctx context.Context, stock *catalog.ProductStock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(stock).Error
}

// Delete removes the stock row of one product in one warehouse
func (r *GormStockRepository) Delete(ctx context.Context, productID, warehouseID uint) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Delete(&catalog.ProductStock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.StockRepository = (*GormStockRepository)(nil)
