package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements finance.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uint) (*finance.Currency, error) {
	var currency finance.Currency
	if err := r.db.WithContext(ctx).First(&currency, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &currency, nil
}

// FindByCode finds a currency by its code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	var currency finance.Currency
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&currency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &currency, nil
}

// FindAll returns all currencies ordered by code
func (r *GormCurrencyRepository) FindAll(ctx context.Context) ([]finance.Currency, error) {
	var currencies []finance.Currency
	if err := r.db.WithContext(ctx).Order("code").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

// FindBase returns the base currency
func (r *GormCurrencyRepository) FindBase(ctx context.Context) (*finance.Currency, error) {
	var currency finance.Currency
	if err := r.db.WithContext(ctx).Where("is_base = ?", true).First(&currency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &currency, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *finance.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}

// Delete deletes a currency
func (r *GormCurrencyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&finance.Currency{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
