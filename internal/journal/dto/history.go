package dto

import (
	"golang-trade-journal/internal/journal/analytics"

	"github.com/shopspring/decimal"
)

// HistoryResponse is the trade history view.
type HistoryResponse struct {
	Trades   []TradeWithChecklist `json:"trades"`
	Total    int                  `json:"total"`
	Open     int                  `json:"open"`
	Closed   int                  `json:"closed"`
	Wins     int                  `json:"wins"`
	Losses   int                  `json:"losses"`
	WinRate  decimal.Decimal      `json:"win_rate" swaggertype:"string"`
	TotalPnL decimal.Decimal      `json:"total_pnl" swaggertype:"string"`
	// PnLPercent is TotalPnL relative to the current balance, zero when there is no balance.
	PnLPercent decimal.Decimal        `json:"pnl_percent" swaggertype:"string"`
	Balance    BalanceSummaryResponse `json:"balance"`
	Analytics  *analytics.TradeReport `json:"analytics,omitempty"`
}
