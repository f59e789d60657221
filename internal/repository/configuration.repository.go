package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/knownasnaffy/saldo/internal/model"
	"github.com/knownasnaffy/saldo/pkg/sqlite"
)

var (
	ErrConfigurationNotFound = errors.New("configuration not found")
	ErrInvalidRate           = errors.New("rate must be positive")
)

type ConfigurationRepository struct {
	*sqlite.DB
}

func NewConfigurationRepository(db *sqlite.DB) *ConfigurationRepository {
	return &ConfigurationRepository{
		db,
	}
}

func (r *ConfigurationRepository) Get(ctx context.Context) (*model.Configuration, error) {
	var entity ConfigurationEntity

	err := r.Conn(ctx).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigurationNotFound
		}
		return nil, err
	}

	return toConfigurationModel(&entity), nil
}

// Save fully replaces the singleton configuration row. The table holds one
// row at most; delete-then-insert keeps that true even after a re-setup.
func (r *ConfigurationRepository) Save(ctx context.Context, rate, initialBalance float64) (*model.Configuration, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}

	entity := &ConfigurationEntity{
		RatePerItem:    rate,
		InitialBalance: initialBalance,
	}

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Conn(ctx).Where("1 = 1").Delete(&ConfigurationEntity{}).Error; err != nil {
			return err
		}
		return r.Conn(ctx).Create(entity).Error
	})
	if err != nil {
		return nil, err
	}

	return toConfigurationModel(entity), nil
}

// UpdateRate mutates only the rate column; initial_balance and created_at
// stay untouched so the historical baseline survives rate changes.
func (r *ConfigurationRepository) UpdateRate(ctx context.Context, newRate float64) error {
	if newRate <= 0 {
		return ErrInvalidRate
	}

	result := r.Conn(ctx).
		Model(&ConfigurationEntity{}).
		Where("1 = 1").
		Update("rate_per_item", newRate)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrConfigurationNotFound
	}

	return nil
}
