package model

import "time"

// Transaction is one immutable ledger entry. Cost is fixed at the rate in
// effect when the entry was written; later rate changes never touch it.
// BalanceAfter on the newest entry is the authoritative current balance.
type Transaction struct {
	ID           int64     `json:"id"`
	Items        int       `json:"items"`
	Cost         float64   `json:"cost"`
	Payment      float64   `json:"payment"`
	BalanceAfter float64   `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}
