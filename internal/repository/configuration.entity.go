package repository

import (
	"time"

	"github.com/knownasnaffy/saldo/internal/model"
)

type ConfigurationEntity struct {
	ID             int64     `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	RatePerItem    float64   `db:"rate_per_item"   gorm:"column:rate_per_item;not null"`
	InitialBalance float64   `db:"initial_balance" gorm:"column:initial_balance;not null"`
	CreatedAt      time.Time `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (ConfigurationEntity) TableName() string {
	return "configuration"
}

func toConfigurationModel(e *ConfigurationEntity) *model.Configuration {
	if e == nil {
		return nil
	}
	return &model.Configuration{
		RatePerItem:    e.RatePerItem,
		InitialBalance: e.InitialBalance,
		CreatedAt:      e.CreatedAt,
	}
}
