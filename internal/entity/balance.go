package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEntry is one row of the append-only balance ledger. Balance is the
// running total after ChangeAmount was applied.
type BalanceEntry struct {
	ID           int64           `json:"id"`
	Balance      decimal.Decimal `json:"balance"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
	Reason       string          `json:"reason"`
	TradeID      *int64          `json:"trade_id,omitempty"`
	Account      string          `json:"account,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BalanceChange describes a ledger movement to append.
type BalanceChange struct {
	Delta   decimal.Decimal
	Reason  string
	Account string
	TradeID *int64
}
