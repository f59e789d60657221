package cli

import (
	"fmt"
	"strings"

	"github.com/knownasnaffy/saldo/internal/ledger"
	"github.com/knownasnaffy/saldo/internal/model"
)

// renderHistory lays out transactions as a fixed-width table, newest first,
// followed by totals over the listed page.
func renderHistory(l *ledger.Ledger, txns []*model.Transaction) string {
	var b strings.Builder

	rule := dimStyle.Render(strings.Repeat("-", 56))

	b.WriteString(fmt.Sprintf("\nRecent transactions (last %d):\n", len(txns)))
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-12s %6s %10s %10s %12s\n", "Date", "Items", "Cost", "Payment", "Balance"))
	b.WriteString(rule + "\n")

	var totalItems int
	var totalCost, totalPayments float64

	for _, t := range txns {
		b.WriteString(fmt.Sprintf("%-12s %6d %10s %10s %12s\n",
			t.CreatedAt.Format("2006-01-02"),
			t.Items,
			l.FormatAmount(t.Cost),
			l.FormatAmount(t.Payment),
			l.FormatAmount(t.BalanceAfter),
		))
		totalItems += t.Items
		totalCost += t.Cost
		totalPayments += t.Payment
	}

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Total items processed: %d\n", totalItems))
	b.WriteString(fmt.Sprintf("Total cost: %s\n", l.FormatAmount(totalCost)))
	b.WriteString(fmt.Sprintf("Total payments: %s\n", l.FormatAmount(totalPayments)))

	return b.String()
}
