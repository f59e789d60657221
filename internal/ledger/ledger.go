// Package ledger holds the business rules of the balance ledger: account
// setup, cost calculation, transaction application, and rate updates. It
// validates input before touching storage and reports failures as typed
// errors; presentation and persistence mechanics live elsewhere.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/knownasnaffy/saldo/internal/model"
	"github.com/knownasnaffy/saldo/internal/repository"
	"github.com/knownasnaffy/saldo/pkg/logger"
)

// Input-range guards carried over from the source system. Values beyond
// these are almost certainly typos, so they are rejected up front.
const (
	MaxRate   = 1000
	MaxItems  = 10000
	MaxAmount = 1000000
)

// DefaultCurrency is the marker used when formatting amounts for display.
const DefaultCurrency = "₹"

type ConfigurationRepository interface {
	Get(ctx context.Context) (*model.Configuration, error)
	Save(ctx context.Context, rate, initialBalance float64) (*model.Configuration, error)
	UpdateRate(ctx context.Context, newRate float64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	List(ctx context.Context, limit int) ([]*model.Transaction, error)
	Latest(ctx context.Context) (*model.Transaction, error)
}

type Ledger struct {
	configRepo ConfigurationRepository
	txnRepo    TransactionRepository
	currency   string
}

type Option func(*Ledger)

// WithCurrency overrides the marker used by FormatAmount.
func WithCurrency(symbol string) Option {
	return func(l *Ledger) {
		if symbol != "" {
			l.currency = symbol
		}
	}
}

func New(configRepo ConfigurationRepository, txnRepo TransactionRepository, opts ...Option) *Ledger {
	l := &Ledger{
		configRepo: configRepo,
		txnRepo:    txnRepo,
		currency:   DefaultCurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetupAccount creates or fully replaces the account configuration. Prior
// transaction history is left in place; the CLI warns before overwriting an
// existing configuration.
func (l *Ledger) SetupAccount(ctx context.Context, rate, initialBalance float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	if err := validateAmount(initialBalance, "initial balance"); err != nil {
		return err
	}

	if _, err := l.configRepo.Save(ctx, rate, initialBalance); err != nil {
		if errors.Is(err, repository.ErrInvalidRate) {
			return newValidation("rate per item must be positive", fmt.Sprintf("received value: %v", rate))
		}
		return wrapStorage(err, "failed to save account configuration")
	}

	logger.Debug("account configured", "rate", rate, "initial_balance", initialBalance)
	return nil
}

// CalculateCost returns items times the currently configured rate. The
// result is not rounded; formatting is the caller's concern.
func (l *Ledger) CalculateCost(ctx context.Context, items int) (float64, error) {
	if err := validateItems(items); err != nil {
		return 0, err
	}

	cfg, err := l.requireConfiguration(ctx)
	if err != nil {
		return 0, err
	}

	return float64(items) * cfg.RatePerItem, nil
}

// AddTransaction applies one transaction: cost is computed from the rate in
// effect right now, the running balance advances by cost minus payment, and
// the resulting entry is appended to the ledger. A negative payment records
// a refund.
func (l *Ledger) AddTransaction(ctx context.Context, items int, payment float64) (*model.Transaction, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if err := validateAmount(payment, "payment amount"); err != nil {
		return nil, err
	}

	cfg, err := l.requireConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := l.currentBalance(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cost := float64(items) * cfg.RatePerItem
	newBalance := balance + cost - payment

	if math.Abs(newBalance) > MaxAmount {
		return nil, newValidation(
			"resulting balance would be unusually large",
			fmt.Sprintf("new balance would be: %v; verify the transaction amounts", newBalance),
		)
	}

	txn, err := l.txnRepo.Create(ctx, &model.Transaction{
		Items:        items,
		Cost:         cost,
		Payment:      payment,
		BalanceAfter: newBalance,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransaction) {
			return nil, newValidation("invalid transaction data", err.Error())
		}
		return nil, wrapStorage(err, "failed to save transaction")
	}

	logger.Debug("transaction recorded",
		"id", txn.ID, "items", items, "cost", cost, "payment", payment, "balance_after", newBalance)
	return txn, nil
}

// CurrentBalance returns the balance after the newest transaction, or the
// configured initial balance when no transactions exist. Positive means the
// user owes, negative means credit.
func (l *Ledger) CurrentBalance(ctx context.Context) (float64, error) {
	cfg, err := l.requireConfiguration(ctx)
	if err != nil {
		return 0, err
	}
	return l.currentBalance(ctx, cfg)
}

func (l *Ledger) currentBalance(ctx context.Context, cfg *model.Configuration) (float64, error) {
	latest, err := l.txnRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoTransactions) {
			return cfg.InitialBalance, nil
		}
		return 0, wrapStorage(err, "failed to retrieve current balance")
	}
	return latest.BalanceAfter, nil
}

// UpdateRate changes the per-item rate going forward. Historical
// transactions keep the cost and balance recorded when they were created;
// nothing is recomputed.
func (l *Ledger) UpdateRate(ctx context.Context, newRate float64) (*model.RateUpdate, error) {
	if err := validateRate(newRate); err != nil {
		return nil, err
	}

	cfg, err := l.requireConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.configRepo.UpdateRate(ctx, newRate); err != nil {
		switch {
		case errors.Is(err, repository.ErrConfigurationNotFound):
			return nil, errNoConfiguration()
		case errors.Is(err, repository.ErrInvalidRate):
			return nil, newValidation("rate per item must be positive", fmt.Sprintf("received value: %v", newRate))
		default:
			return nil, wrapStorage(err, "failed to update configuration rate")
		}
	}

	logger.Debug("rate updated", "old_rate", cfg.RatePerItem, "new_rate", newRate)
	return &model.RateUpdate{
		OldRate:   cfg.RatePerItem,
		NewRate:   newRate,
		UpdatedAt: time.Now(),
	}, nil
}

// ConfigurationDisplay returns the configuration with amounts pre-formatted
// for display.
func (l *Ledger) ConfigurationDisplay(ctx context.Context) (*model.ConfigurationDisplay, error) {
	cfg, err := l.requireConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ConfigurationDisplay{
		Configuration:           *cfg,
		FormattedRate:           l.FormatAmount(cfg.RatePerItem),
		FormattedInitialBalance: l.FormatAmount(cfg.InitialBalance),
	}, nil
}

// History returns up to limit transactions, newest first. A limit of zero
// means "everything", bounded by the repository cap.
func (l *Ledger) History(ctx context.Context, limit int) ([]*model.Transaction, error) {
	if limit < 0 {
		return nil, newValidation("limit cannot be negative", fmt.Sprintf("received value: %d", limit))
	}
	if limit > repository.MaxListLimit {
		return nil, newValidation(
			"limit is too large",
			fmt.Sprintf("received value: %d, maximum: %d", limit, repository.MaxListLimit),
		)
	}

	if _, err := l.requireConfiguration(ctx); err != nil {
		return nil, err
	}

	txns, err := l.txnRepo.List(ctx, limit)
	if err != nil {
		return nil, wrapStorage(err, "failed to retrieve transactions")
	}
	return txns, nil
}

// FormatAmount renders an amount as two-decimal fixed point with the
// configured currency marker.
func (l *Ledger) FormatAmount(v float64) string {
	return fmt.Sprintf("%s%.2f", l.currency, v)
}

// requireConfiguration fetches the configuration and re-checks its
// integrity; a persisted non-positive rate means setup must run again.
func (l *Ledger) requireConfiguration(ctx context.Context) (*model.Configuration, error) {
	cfg, err := l.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrConfigurationNotFound) {
			return nil, errNoConfiguration()
		}
		return nil, wrapStorage(err, "failed to retrieve configuration")
	}

	if cfg.RatePerItem <= 0 {
		return nil, newConfiguration(
			"invalid rate in configuration",
			fmt.Sprintf("rate: %v; run setup again", cfg.RatePerItem),
		)
	}

	return cfg, nil
}

func errNoConfiguration() *Error {
	return newConfiguration(
		"no configuration found",
		"run 'saldo setup' first",
	)
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return newValidation("rate must be a number", fmt.Sprintf("received value: %v", rate))
	}
	if rate <= 0 {
		return newValidation("rate per item must be positive", fmt.Sprintf("received value: %v", rate))
	}
	if rate > MaxRate {
		return newValidation(
			"rate per item seems unusually high",
			fmt.Sprintf("received value: %v; verify this is correct", rate),
		)
	}
	return nil
}

func validateItems(items int) error {
	if items < 0 {
		return newValidation("number of items cannot be negative", fmt.Sprintf("received value: %d", items))
	}
	if items > MaxItems {
		return newValidation(
			"number of items seems unusually large",
			fmt.Sprintf("received value: %d; verify this is correct", items),
		)
	}
	return nil
}

func validateAmount(v float64, name string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newValidation(name+" must be a number", fmt.Sprintf("received value: %v", v))
	}
	if math.Abs(v) > MaxAmount {
		return newValidation(
			name+" seems unusually large",
			fmt.Sprintf("received value: %v; verify this is correct", v),
		)
	}
	return nil
}
