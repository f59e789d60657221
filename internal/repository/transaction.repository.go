package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/knownasnaffy/saldo/internal/model"
	"github.com/knownasnaffy/saldo/pkg/sqlite"
)

var (
	ErrNoTransactions     = errors.New("no transactions recorded")
	ErrInvalidTransaction = errors.New("transaction fields out of range")
)

// MaxListLimit bounds history queries so a caller cannot request an
// unbounded result set.
const MaxListLimit = 10000

type TransactionRepository struct {
	*sqlite.DB
}

func NewTransactionRepository(db *sqlite.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

// Create appends one immutable ledger entry and returns it with the id and
// timestamp assigned by the database. There is no update or delete.
func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if txn.Items < 0 || txn.Cost < 0 {
		return nil, ErrInvalidTransaction
	}

	entity := toTransactionEntity(txn)

	if err := r.Conn(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// List returns transactions newest first. Ids are assigned monotonically, so
// ordering by id also resolves entries whose timestamps collide. A limit of
// zero returns everything up to MaxListLimit.
func (r *TransactionRepository) List(ctx context.Context, limit int) ([]*model.Transaction, error) {
	if limit < 0 {
		return nil, ErrInvalidTransaction
	}
	if limit == 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	var entities []*TransactionEntity

	err := r.Conn(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

// Latest returns the most recently created transaction.
func (r *TransactionRepository) Latest(ctx context.Context) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Conn(ctx).
		Order("id DESC").
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTransactions
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}
