package repository

import (
	"time"

	"github.com/knownasnaffy/saldo/internal/model"
)

type TransactionEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Items        int       `db:"items"         gorm:"column:items;not null"`
	Cost         float64   `db:"cost"          gorm:"column:cost;not null"`
	Payment      float64   `db:"payment"       gorm:"column:payment;not null"`
	BalanceAfter float64   `db:"balance_after" gorm:"column:balance_after;not null"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:           m.ID,
		Items:        m.Items,
		Cost:         m.Cost,
		Payment:      m.Payment,
		BalanceAfter: m.BalanceAfter,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:           e.ID,
		Items:        e.Items,
		Cost:         e.Cost,
		Payment:      e.Payment,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
