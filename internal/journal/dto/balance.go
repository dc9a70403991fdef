package dto

import (
	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// BalanceAdjustRequest is a manual deposit (positive) or withdrawal (negative).
type BalanceAdjustRequest struct {
	Amount  *decimal.Decimal `json:"amount" validate:"required" swaggertype:"string"`
	Reason  string           `json:"reason" validate:"max=255"`
	Account string           `json:"account"`
}

// AccountBalance is the current balance of one account partition.
type AccountBalance struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance" swaggertype:"string"`
}

// BalanceSummaryResponse is the balance manager view.
type BalanceSummaryResponse struct {
	Current      decimal.Decimal       `json:"current" swaggertype:"string"`
	MultiAccount bool                  `json:"multi_account"`
	Accounts     []AccountBalance      `json:"accounts,omitempty"`
	Recent       []entity.BalanceEntry `json:"recent"`
}
