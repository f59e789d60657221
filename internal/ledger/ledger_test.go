package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/knownasnaffy/saldo/internal/repository"
	"github.com/knownasnaffy/saldo/pkg/sqlite"
)

func newTestLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()

	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&repository.ConfigurationEntity{}, &repository.TransactionEntity{})
	require.NoError(t, err)

	sdb := sqlite.NewWithConn(db)
	return New(
		repository.NewConfigurationRepository(sdb),
		repository.NewTransactionRepository(sdb),
		opts...,
	)
}

func TestSetupAccount_RequiresPositiveRate(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	for _, rate := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		err := l.SetupAccount(ctx, rate, 10)
		assert.True(t, IsValidation(err), "rate %v should fail validation", rate)
	}

	for _, balance := range []float64{10, -3.25, 0} {
		require.NoError(t, l.SetupAccount(ctx, 2.5, balance))
	}
}

func TestSetupAccount_RejectsOutOfRangeInput(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	assert.True(t, IsValidation(l.SetupAccount(ctx, MaxRate+1, 0)))
	assert.True(t, IsValidation(l.SetupAccount(ctx, 2.5, MaxAmount+1)))
	assert.True(t, IsValidation(l.SetupAccount(ctx, 2.5, math.NaN())))
}

func TestOperationsRequireConfiguration(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.CalculateCost(ctx, 3)
	assert.True(t, IsConfiguration(err))

	_, err = l.AddTransaction(ctx, 3, 5)
	assert.True(t, IsConfiguration(err))

	_, err = l.CurrentBalance(ctx)
	assert.True(t, IsConfiguration(err))

	_, err = l.UpdateRate(ctx, 3)
	assert.True(t, IsConfiguration(err))

	_, err = l.ConfigurationDisplay(ctx)
	assert.True(t, IsConfiguration(err))

	_, err = l.History(ctx, 10)
	assert.True(t, IsConfiguration(err))
}

func TestCalculateCost(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, l.SetupAccount(ctx, 2.5, 0))

	t.Run("items times rate", func(t *testing.T) {
		cost, err := l.CalculateCost(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 7.5, cost)
	})

	t.Run("zero items is exactly zero", func(t *testing.T) {
		cost, err := l.CalculateCost(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, cost)
	})

	t.Run("idempotent under unchanged configuration", func(t *testing.T) {
		first, err := l.CalculateCost(ctx, 7)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := l.CalculateCost(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("rejects negative and oversized items", func(t *testing.T) {
		_, err := l.CalculateCost(ctx, -1)
		assert.True(t, IsValidation(err))

		_, err = l.CalculateCost(ctx, MaxItems+1)
		assert.True(t, IsValidation(err))
	})
}

func TestLedgerScenario(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.SetupAccount(ctx, 2.50, 10.00))

	balance, err := l.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.00, balance)

	first, err := l.AddTransaction(ctx, 3, 5.00)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 3, first.Items)
	assert.Equal(t, 7.50, first.Cost)
	assert.Equal(t, 5.00, first.Payment)
	assert.Equal(t, 12.50, first.BalanceAfter)
	assert.False(t, first.CreatedAt.IsZero())

	balance, err = l.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.50, balance)

	second, err := l.AddTransaction(ctx, 2, 20.00)
	require.NoError(t, err)
	assert.Equal(t, 5.00, second.Cost)
	assert.Equal(t, -2.50, second.BalanceAfter)

	upd, err := l.UpdateRate(ctx, 3.00)
	require.NoError(t, err)
	assert.Equal(t, 2.50, upd.OldRate)
	assert.Equal(t, 3.00, upd.NewRate)
	assert.False(t, upd.UpdatedAt.IsZero())

	// Prior entries keep the cost and balance recorded under the old rate.
	txns, err := l.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, 5.00, txns[0].Cost)
	assert.Equal(t, -2.50, txns[0].BalanceAfter)
	assert.Equal(t, 7.50, txns[1].Cost)
	assert.Equal(t, 12.50, txns[1].BalanceAfter)

	third, err := l.AddTransaction(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.00, third.Cost)
	assert.Equal(t, 0.50, third.BalanceAfter)
}

func TestBalanceConservation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, l.SetupAccount(ctx, 2.0, 5.0))

	steps := []struct {
		items   int
		payment float64
	}{
		{3, 4},
		{0, 10},
		{7, 0},
		{2, -3}, // refund
		{1, 2.5},
	}

	expected := 5.0
	for _, step := range steps {
		txn, err := l.AddTransaction(ctx, step.items, step.payment)
		require.NoError(t, err)

		expected = expected + float64(step.items)*2.0 - step.payment
		assert.Equal(t, expected, txn.BalanceAfter)

		balance, err := l.CurrentBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, balance)
	}
}

func TestAddTransaction_Validation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, l.SetupAccount(ctx, 1000, 0))

	_, err := l.AddTransaction(ctx, -1, 0)
	assert.True(t, IsValidation(err))

	_, err = l.AddTransaction(ctx, 1, math.NaN())
	assert.True(t, IsValidation(err))

	_, err = l.AddTransaction(ctx, 1, MaxAmount+1)
	assert.True(t, IsValidation(err))

	// Items and payment individually in range, but the resulting balance
	// would blow past the guard.
	_, err = l.AddTransaction(ctx, MaxItems, 0)
	assert.True(t, IsValidation(err))

	// Nothing was persisted by the rejected attempts.
	balance, err := l.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestUpdateRate_Validation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, l.SetupAccount(ctx, 2.5, 0))

	for _, rate := range []float64{0, -1, math.NaN(), MaxRate + 1} {
		_, err := l.UpdateRate(ctx, rate)
		assert.True(t, IsValidation(err), "rate %v should fail validation", rate)
	}

	cfg, err := l.ConfigurationDisplay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.RatePerItem)
}

func TestConfigurationDisplay_Formatting(t *testing.T) {
	ctx := context.Background()

	t.Run("default currency", func(t *testing.T) {
		l := newTestLedger(t)
		require.NoError(t, l.SetupAccount(ctx, 2.5, 10))

		display, err := l.ConfigurationDisplay(ctx)
		require.NoError(t, err)
		assert.Equal(t, "₹2.50", display.FormattedRate)
		assert.Equal(t, "₹10.00", display.FormattedInitialBalance)
		assert.False(t, display.CreatedAt.IsZero())
	})

	t.Run("custom currency", func(t *testing.T) {
		l := newTestLedger(t, WithCurrency("$"))
		require.NoError(t, l.SetupAccount(ctx, 2.5, -3))

		display, err := l.ConfigurationDisplay(ctx)
		require.NoError(t, err)
		assert.Equal(t, "$2.50", display.FormattedRate)
		assert.Equal(t, "$-3.00", display.FormattedInitialBalance)
	})
}

func TestHistory(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, l.SetupAccount(ctx, 1, 0))

	for i := 0; i < 4; i++ {
		_, err := l.AddTransaction(ctx, i, 0)
		require.NoError(t, err)
	}

	t.Run("newest first with limit", func(t *testing.T) {
		txns, err := l.History(ctx, 2)
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, 3, txns[0].Items)
		assert.Equal(t, 2, txns[1].Items)
	})

	t.Run("rejects out-of-range limits", func(t *testing.T) {
		_, err := l.History(ctx, -1)
		assert.True(t, IsValidation(err))

		_, err = l.History(ctx, repository.MaxListLimit+1)
		assert.True(t, IsValidation(err))
	})
}

func TestReSetupKeepsTransactionHistory(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.SetupAccount(ctx, 2.5, 10))
	_, err := l.AddTransaction(ctx, 2, 0)
	require.NoError(t, err)

	// Re-setup replaces the configuration without clearing the ledger; the
	// newest transaction stays authoritative for the balance.
	require.NoError(t, l.SetupAccount(ctx, 4, 100))

	txns, err := l.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	balance, err := l.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15.0, balance)

	display, err := l.ConfigurationDisplay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, display.RatePerItem)
	assert.Equal(t, 100.0, display.InitialBalance)
}
