package persistence

import (
	"context"
	"errors"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAttributeRepository implements catalog.AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute with its options and group
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uint) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("attribute_options.sort_order, attribute_options.id") }).
		First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindAll returns every attribute with its ordered options and group.
// The field registry boots from this on every invocation.
func (r *GormAttributeRepository) FindAll(ctx context.Context) ([]catalog.Attribute, error) {
	var attributes []catalog.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("attribute_options.sort_order, attribute_options.id") }).
		Joins("LEFT JOIN attribute_groups ON attribute_groups.id = attributes.group_id").
		Order("attribute_groups.sort_order, attributes.sort_order, attributes.id").
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// Save creates or updates an attribute
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	return r.db.WithContext(ctx).Omit("Options", "Group").Save(attribute).Error
}

// Delete deletes an attribute, its options and its product values
func (r *GormAttributeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.ProductAttributeValue{}, "attribute_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.AttributeOption{}, "attribute_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Attribute{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasValues reports whether any product carries a value for the attribute
func (r *GormAttributeRepository) HasValues(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.ProductAttributeValue{}).
		Where("attribute_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceOptions replaces the attribute's predefined options
func (r *GormAttributeRepository) ReplaceOptions(ctx context.Context, attribute *catalog.Attribute, options []catalog.AttributeOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.AttributeOption{}, "attribute_id = ?", attribute.ID).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].AttributeID = attribute.ID
		}
		if len(options) == 0 {
			attribute.Options = nil
			return nil
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}
		attribute.Options = options
		return nil
	})
}
