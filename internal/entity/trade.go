package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Trade is a journaled position. Product-specific attributes live in Fields.
type Trade struct {
	ID         int64            `json:"id"`
	Workspace  string           `json:"workspace"`
	Instrument string           `json:"instrument"`
	Direction  string           `json:"direction"`
	EntryURL   string           `json:"entry_url,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Status     TradeStatus      `json:"status"`
	PnL        *decimal.Decimal `json:"pnl"`
	EntryDate  time.Time        `json:"entry_date"`
	ExitDate   *time.Time       `json:"exit_date,omitempty"`
	ExitURL    string           `json:"exit_url,omitempty"`
	Fields     TradeFields      `json:"fields"`
}

// IsClosedWithPnL reports whether the trade counts towards performance analytics.
func (t Trade) IsClosedWithPnL() bool {
	return t.Status == TradeStatusClosed && t.PnL != nil
}

// Account returns the balance partition of the trade, if any.
func (t Trade) Account() string {
	if f, ok := t.Fields.(StockTradeFields); ok {
		return f.Account
	}
	return ""
}

// Setup returns the setup classification for stock and forex trades.
func (t Trade) Setup() (SetupFields, bool) {
	switch f := t.Fields.(type) {
	case StockTradeFields:
		return f.SetupFields, true
	case ForexTradeFields:
		return f.SetupFields, true
	}
	return SetupFields{}, false
}

// RiskAmount returns the declared risk for stock and forex trades.
func (t Trade) RiskAmount() (decimal.Decimal, bool) {
	switch f := t.Fields.(type) {
	case StockTradeFields:
		return f.RiskAmount, true
	case ForexTradeFields:
		return f.RiskAmount, true
	}
	return decimal.Zero, false
}

// TradeFields is the closed set of product-specific trade attributes.
type TradeFields interface {
	Kind() WorkspaceKind
	tradeFields()
}

// SetupFields classifies how a stock or forex trade was taken.
type SetupFields struct {
	EntryType string `json:"entry_type,omitempty"`
	Rule      string `json:"rule,omitempty"`
	Zone      string `json:"zone,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// StockTradeFields are the attributes of an equity trade.
type StockTradeFields struct {
	SetupFields
	StopSize   decimal.Decimal `json:"stop_size"`
	RiskAmount decimal.Decimal `json:"risk_amount"`
	Account    string          `json:"account,omitempty"`
}

// ForexTradeFields are the attributes of a currency trade.
type ForexTradeFields struct {
	SetupFields
	StopSize   decimal.Decimal `json:"stop_size"`
	RiskAmount decimal.Decimal `json:"risk_amount"`
}

// OptionTradeFields are the attributes of an option contract trade.
type OptionTradeFields struct {
	OptionType  string          `json:"option_type"`
	StrikePrice decimal.Decimal `json:"strike_price"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Contracts   int             `json:"contracts"`
	Premium     decimal.Decimal `json:"premium"`
}

func (StockTradeFields) Kind() WorkspaceKind  { return WorkspaceKindStocks }
func (ForexTradeFields) Kind() WorkspaceKind  { return WorkspaceKindForex }
func (OptionTradeFields) Kind() WorkspaceKind { return WorkspaceKindOptions }

func (StockTradeFields) tradeFields()  {}
func (ForexTradeFields) tradeFields()  {}
func (OptionTradeFields) tradeFields() {}

// TradeClose carries the values recorded when a trade is closed.
type TradeClose struct {
	ExitURL string
	PnL     decimal.Decimal
	Notes   string
}
