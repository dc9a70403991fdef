package dto

import (
	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// CreateTradeRequest is the DTO for opening a trade. Only the fields the
// workspace stores are read.
type CreateTradeRequest struct {
	ApprovalToken string `json:"approval_token"`
	Instrument    string `json:"instrument" validate:"required,max=32"`
	Direction     string `json:"direction" validate:"required"`
	EntryURL      string `json:"entry_url" validate:"omitempty,url"`
	Notes         string `json:"notes"`

	EntryType string `json:"entry_type"`
	Rule      string `json:"rule"`
	Zone      string `json:"zone"`
	Pattern   string `json:"pattern"`

	StopSize   *decimal.Decimal `json:"stop_size" swaggertype:"string"`
	RiskAmount *decimal.Decimal `json:"risk_amount" swaggertype:"string"`
	Account    string           `json:"account"`

	OptionType  string           `json:"option_type"`
	StrikePrice *decimal.Decimal `json:"strike_price" swaggertype:"string"`
	ExpiryDate  string           `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Contracts   int              `json:"contracts" validate:"gte=0"`
	Premium     *decimal.Decimal `json:"premium" swaggertype:"string"`
}

// CloseTradeRequest is the DTO for closing an open trade. A missing P&L closes
// the trade flat.
type CloseTradeRequest struct {
	ExitURL string           `json:"exit_url" validate:"omitempty,url"`
	PnL     *decimal.Decimal `json:"pnl" swaggertype:"string"`
	Notes   string           `json:"notes"`
}

// CloseTradeResponse is the closed trade and the balance row it produced, if any.
type CloseTradeResponse struct {
	Trade        entity.Trade         `json:"trade"`
	BalanceEntry *entity.BalanceEntry `json:"balance_entry,omitempty"`
}

// RiskBudgetResponse is the largest risk a new trade may declare.
type RiskBudgetResponse struct {
	Account      string          `json:"account,omitempty"`
	Balance      decimal.Decimal `json:"balance" swaggertype:"string"`
	RiskFraction decimal.Decimal `json:"risk_fraction" swaggertype:"string"`
	MaxRisk      decimal.Decimal `json:"max_risk" swaggertype:"string"`
}

// TradeWithChecklist pairs a trade with the checklist snapshot that unlocked it.
type TradeWithChecklist struct {
	entity.Trade
	Checklist *entity.ChecklistLog `json:"checklist,omitempty"`
}
