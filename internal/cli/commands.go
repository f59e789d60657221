package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/knownasnaffy/saldo/internal/ledger"
)

type Commands struct {
	Setup          SetupCmd          `cmd:"" help:"Initialize the account with a per-item rate and a starting balance."`
	AddTransaction AddTransactionCmd `cmd:"" name:"add-transaction" help:"Record a transaction: items processed and payment made."`
	Balance        BalanceCmd        `cmd:"" help:"Show the current balance, optionally with recent history."`
	UpdateRate     UpdateRateCmd     `cmd:"" name:"update-rate" help:"Change the per-item rate for future transactions."`
	Config         ConfigCmd         `cmd:"" help:"Show the stored account configuration."`
}

type SetupCmd struct {
	Rate    *float64 `help:"Rate per item (must be positive)."`
	Balance *float64 `help:"Initial balance (positive = you owe, negative = credit)."`
}

func (c *SetupCmd) Run(app *Context) error {
	ctx := context.Background()

	// Re-setup replaces the configuration but keeps transaction history, so
	// never overwrite silently.
	display, err := app.Ledger.ConfigurationDisplay(ctx)
	switch {
	case err == nil:
		printWarning(app.Out, "Configuration already exists")
		printInfof(app.Out, "Current rate: %s per item", display.FormattedRate)
		printInfof(app.Out, "Initial balance: %s", display.FormattedInitialBalance)

		overwrite, err := promptYesNo("Overwrite the existing configuration?")
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(app.Out, "Setup cancelled.")
			return nil
		}
	case !ledger.IsConfiguration(err):
		return err
	}

	rate, err := floatArg(c.Rate, "rate", "Rate per item (e.g. 2.50)", true)
	if err != nil {
		return err
	}

	balance := 0.0
	if c.Balance != nil {
		balance = *c.Balance
	} else if isTerminal() {
		balance, err = promptFloat("Current balance (positive = you owe, negative = credit, 0 for a new account)", false)
		if err != nil {
			return err
		}
	}

	if err := app.Ledger.SetupAccount(ctx, rate, balance); err != nil {
		return err
	}

	printSuccess(app.Out, "Account setup completed")
	printInfof(app.Out, "Rate per item: %s", app.Ledger.FormatAmount(rate))
	printInfof(app.Out, "Initial balance: %s", app.describeBalance(balance, "starting fresh"))
	return nil
}

type AddTransactionCmd struct {
	Items   *int     `help:"Number of items processed."`
	Payment *float64 `help:"Payment amount (negative records a refund)."`
}

func (c *AddTransactionCmd) Run(app *Context) error {
	ctx := context.Background()

	items, err := intArg(c.Items, "items", "Number of items processed")
	if err != nil {
		return err
	}

	cost, err := app.Ledger.CalculateCost(ctx, items)
	if err != nil {
		return err
	}
	balance, err := app.Ledger.CurrentBalance(ctx)
	if err != nil {
		return err
	}
	display, err := app.Ledger.ConfigurationDisplay(ctx)
	if err != nil {
		return err
	}

	totalDue := balance + cost
	printInfof(app.Out, "Items processed: %d", items)
	printInfof(app.Out, "Rate per item: %s", display.FormattedRate)
	printInfof(app.Out, "Total cost: %s", app.Ledger.FormatAmount(cost))
	printInfof(app.Out, "Previous balance: %s", app.Ledger.FormatAmount(balance))
	printInfof(app.Out, "Total amount due: %s", app.Ledger.FormatAmount(totalDue))

	payment, err := floatArg(c.Payment, "payment",
		fmt.Sprintf("Payment amount (total due: %s)", app.Ledger.FormatAmount(totalDue)), false)
	if err != nil {
		return err
	}

	txn, err := app.Ledger.AddTransaction(ctx, items, payment)
	if err != nil {
		return err
	}

	printSuccess(app.Out, "Transaction recorded")
	printInfof(app.Out, "Payment received: %s", app.Ledger.FormatAmount(payment))
	printInfof(app.Out, "New balance: %s", app.describeBalance(txn.BalanceAfter, "all settled"))

	change := payment - cost
	if change > 0 {
		printInfof(app.Out, "Overpayment: %s (applied as credit)", app.Ledger.FormatAmount(change))
	} else if change < 0 {
		printInfof(app.Out, "Underpayment: %s (added to balance)", app.Ledger.FormatAmount(math.Abs(change)))
	}
	return nil
}

type BalanceCmd struct {
	Detailed bool `short:"d" help:"Show recent transaction history."`
	Limit    int  `default:"10" help:"Number of recent transactions to show."`
}

func (c *BalanceCmd) Run(app *Context) error {
	ctx := context.Background()

	display, err := app.Ledger.ConfigurationDisplay(ctx)
	if err != nil {
		return err
	}
	balance, err := app.Ledger.CurrentBalance(ctx)
	if err != nil {
		return err
	}

	printInfof(app.Out, "Rate per item: %s", display.FormattedRate)
	printInfof(app.Out, "Current balance: %s", app.describeBalance(balance, "all settled"))

	if !c.Detailed {
		_, _ = fmt.Fprintln(app.Out, dimStyle.Render("Use 'saldo balance --detailed' to see transaction history."))
		return nil
	}

	txns, err := app.Ledger.History(ctx, c.Limit)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		printInfof(app.Out, "No transactions recorded yet.")
		return nil
	}

	_, _ = fmt.Fprint(app.Out, renderHistory(app.Ledger, txns))
	return nil
}

type UpdateRateCmd struct {
	Rate *float64 `help:"New rate per item (must be positive)."`
}

func (c *UpdateRateCmd) Run(app *Context) error {
	ctx := context.Background()

	rate, err := floatArg(c.Rate, "rate", "New rate per item", true)
	if err != nil {
		return err
	}

	upd, err := app.Ledger.UpdateRate(ctx, rate)
	if err != nil {
		return err
	}

	printSuccess(app.Out, "Rate updated")
	printInfof(app.Out, "Old rate: %s", app.Ledger.FormatAmount(upd.OldRate))
	printInfof(app.Out, "New rate: %s (applies to future transactions only)", app.Ledger.FormatAmount(upd.NewRate))
	return nil
}

type ConfigCmd struct{}

func (c *ConfigCmd) Run(app *Context) error {
	display, err := app.Ledger.ConfigurationDisplay(context.Background())
	if err != nil {
		return err
	}

	printInfof(app.Out, "Rate per item: %s", display.FormattedRate)
	printInfof(app.Out, "Initial balance: %s", display.FormattedInitialBalance)
	printInfof(app.Out, "Configured at: %s", display.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// describeBalance renders an amount with its owed/credit direction; the
// zeroLabel names the settled case ("all settled" vs "starting fresh").
func (app *Context) describeBalance(v float64, zeroLabel string) string {
	switch {
	case v > 0:
		return fmt.Sprintf("%s (you owe)", app.Ledger.FormatAmount(v))
	case v < 0:
		return fmt.Sprintf("%s (you have credit)", app.Ledger.FormatAmount(math.Abs(v)))
	default:
		return fmt.Sprintf("%s (%s)", app.Ledger.FormatAmount(0), zeroLabel)
	}
}
