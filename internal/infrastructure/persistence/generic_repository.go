package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRepository is a generic GORM implementation of shared.Repository for
// simple lookup entities (brands, categories, warehouses, ...). A search
// column may be configured for the filter's Search term.
type GormRepository[T any] struct {
	db           *gorm.DB
	searchColumn string
}

// NewGormRepository creates a generic repository. searchColumn may be
// empty when the entity has no searchable text column.
func NewGormRepository[T any](db *gorm.DB, searchColumn string) *GormRepository[T] {
	return &GormRepository[T]{db: db, searchColumn: searchColumn}
}

// FindByID finds an entity by its ID
func (r *GormRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all entities matching the filter
func (r *GormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	if err := r.applyFilter(ctx, filter).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates an entity
func (r *GormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete deletes an entity
func (r *GormRepository[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts entities matching the filter
func (r *GormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var total int64
	if err := r.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepository[T]) applyFilter(ctx context.Context, filter shared.Filter) *gorm.DB {
	var entity T
	tx := r.db.WithContext(ctx).Model(&entity)
	if filter.Search != "" && r.searchColumn != "" {
		tx = tx.Where(r.searchColumn+" LIKE ?", "%"+filter.Search+"%")
	}
	if filter.OrderBy != "" {
		dir := "asc"
		if filter.OrderDir == "desc" {
			dir = "desc"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}
	return tx
}
