package workspace

import (
	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

const (
	KeyStocks  = "stocks"
	KeyForex   = "forex"
	KeyOptions = "options"

	// DefaultRiskFraction is the share of the balance a single trade may risk.
	DefaultRiskFraction = "0.005"

	// DefaultMinClosedTrades is the sample size needed before trade analytics are shown.
	DefaultMinClosedTrades = 5
)

var longShort = []Option{
	{Value: "long", Label: "Long (Buy)"},
	{Value: "short", Label: "Short (Sell)"},
}

func checklistLogColumns() ChecklistLogColumns {
	return ChecklistLogColumns{
		ID:        "id",
		TradeID:   "trade_id",
		Answers:   "answers",
		Zone:      "zone",
		Status:    "status",
		Workspace: "workspace",
		CreatedAt: "created_at",
	}
}

func checklistAttemptColumns() ChecklistAttemptColumns {
	return ChecklistAttemptColumns{
		ID:            "id",
		Answers:       "answers",
		Zone:          "zone",
		Status:        "status",
		Workspace:     "workspace",
		FailureReason: "failure_reason",
		FailedItems:   "failed_items",
		CreatedAt:     "created_at",
	}
}

func planColumns() PlanColumns {
	return PlanColumns{ID: "id", Content: "content", UpdatedAt: "updated_at"}
}

func balanceColumns(currency string) BalanceColumns {
	return BalanceColumns{
		ID:           "id",
		Balance:      "balance",
		ChangeAmount: "change_amount",
		Reason:       "change_reason",
		TradeID:      "trade_id",
		CreatedAt:    "created_at",
		Currency:     currency,
	}
}

func missedColumns(instrument string) MissedColumns {
	return MissedColumns{
		ID:              "id",
		Instrument:      instrument,
		Direction:       "direction",
		BeforeURL:       "before_url",
		AfterURL:        "after_url",
		Pattern:         "pattern",
		PotentialReturn: "potential_return",
		CreatedAt:       "created_at",
	}
}

func setupTradeColumns(instrument, account string) TradeColumns {
	return TradeColumns{
		ID:         "id",
		Instrument: instrument,
		Direction:  "direction",
		StopSize:   "stopsize",
		RiskAmount: "risk_amount",
		EntryURL:   "entry_url",
		EntryType:  "entrytype",
		Rule:       "rule3",
		Zone:       "zone",
		Pattern:    "pattern_traded",
		Notes:      "notes",
		Status:     "status",
		PnL:        "pnl",
		EntryDate:  "entry_date",
		ExitDate:   "exit_date",
		ExitURL:    "exit_url",
		Account:    account,
	}
}

func options(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

// Stocks returns the equity workspace with CAD and USD accounts.
func Stocks() Config {
	return Config{
		Key:         KeyStocks,
		Kind:        entity.WorkspaceKindStocks,
		Title:       "Stock Trading Workspace",
		Description: "Log, update, and review your equity trades with balance tracking and analytics.",
		Tables: Tables{
			Trades:            "stock_trades",
			Balance:           "stock_balance_history",
			Missed:            "stock_missed_trades",
			Plan:              "stock_trading_plan",
			ChecklistLogs:     "stock_checklist_logs",
			ChecklistAttempts: "stock_checklist_attempts",
		},
		TradeColumns:            setupTradeColumns("ticker", "account_currency"),
		BalanceColumns:          balanceColumns("currency"),
		MissedColumns:           missedColumns("ticker"),
		PlanColumns:             planColumns(),
		ChecklistLogColumns:     checklistLogColumns(),
		ChecklistAttemptColumns: checklistAttemptColumns(),
		Features:                Features{MissedTrades: true, Analytics: true, TradingPlan: true, Checklist: true},
		Vocabulary: Vocabulary{
			Directions: longShort,
			EntryTypes: options("Breakout", "Pullback", "Reversal", "News Catalyst"),
			Rules:      options("Trend", "Range", "Reversal"),
			Zones:      options("Accumulation", "Breakout", "Distribution"),
			Patterns: options("Breakout", "Pullback", "Trend Continuation", "Gap and Go",
				"News Catalyst", "Earnings Drift", "Reversal", "Base Breakout"),
			MissedPatterns: options("Breakout", "Pullback", "Trend Continuation", "Gap and Go", "Reversal"),
			Accounts: []Option{
				{Value: "CAD", Label: "CAD Account"},
				{Value: "USD", Label: "USD Account"},
			},
		},
		FormDefaults: map[string]string{
			"direction": "long",
			"entryType": "Breakout",
			"rule":      "Trend",
			"zone":      "Breakout",
			"account":   "USD",
		},
		Labels: map[string]string{
			"instrument":    "Ticker Symbol",
			"pattern":       "Setup Traded",
			"missedPattern": "Setup Spotted",
			"balanceTitle":  "Portfolio Balance",
			"stopSize":      "Stop Distance ($)",
			"pnl":           "P&L ($)",
			"planTitle":     "Stock Playbook",
			"account":       "Account",
		},
		AnalyticsLabels: map[string]string{
			"pattern":    "Top Performing Setups",
			"zone":       "Price Zone Performance",
			"entryType":  "Entry Trigger Performance",
			"rule":       "Market Context Performance",
			"day":        "Day of Week Performance",
			"instrument": "Ticker Performance",
		},
		MissedAnalyticsLabels: map[string]string{
			"day":        "By Day of Week",
			"instrument": "By Ticker",
			"pattern":    "Top Setups Missed",
		},
		RiskFraction:        decimal.RequireFromString(DefaultRiskFraction),
		UppercaseInstrument: true,
		ChecklistWorkspace:  KeyStocks,
		MinClosedTrades:     DefaultMinClosedTrades,
		MinMissedTrades:     3,
	}
}

// Forex returns the currency workspace.
func Forex() Config {
	return Config{
		Key:         KeyForex,
		Kind:        entity.WorkspaceKindForex,
		Title:       "Forex Trading Workspace",
		Description: "Enter, update, and review your currency trades with analytics and balance tracking.",
		Tables: Tables{
			Trades:            "trades",
			Balance:           "balance_history",
			Missed:            "missed_trades",
			Plan:              "trading_plan",
			ChecklistLogs:     "forex_checklist_logs",
			ChecklistAttempts: "forex_checklist_attempts",
		},
		TradeColumns:            setupTradeColumns("pair", ""),
		BalanceColumns:          balanceColumns(""),
		MissedColumns:           missedColumns("pair"),
		PlanColumns:             planColumns(),
		ChecklistLogColumns:     checklistLogColumns(),
		ChecklistAttemptColumns: checklistAttemptColumns(),
		Features:                Features{MissedTrades: true, Analytics: true, TradingPlan: true, Checklist: true},
		Vocabulary: Vocabulary{
			Directions: longShort,
			EntryTypes: options("RE", "RRE"),
			Rules:      options("Impulsive", "Structural", "Corrective"),
			Zones:      options("Red", "Yellow", "Green"),
			Patterns: options("Bull Flag", "Bear Flag", "Flat Flag", "Symmetrical Triangle",
				"Expanding Triangle", "Falcon Flag", "Ascending Channel", "Descending Channel",
				"Rising Wedge", "Falling Wedge", "H&S", "Double Top", "Double Bottom", "The Arc",
				"Structural Test", "Hook Point", "Reverse M Style", "M Style"),
			MissedPatterns: options("Bull Flag", "Bear Flag", "Falcon Flag", "Hook Point",
				"Double Top", "Double Bottom"),
		},
		FormDefaults: map[string]string{
			"direction": "long",
			"entryType": "RE",
			"rule":      "Impulsive",
			"zone":      "Red",
		},
		Labels: map[string]string{
			"instrument":    "Currency Pair",
			"pattern":       "Pattern Traded",
			"missedPattern": "Pattern Spotted",
			"balanceTitle":  "Account Balance",
			"stopSize":      "Stop Size",
			"pnl":           "P&L ($)",
			"planTitle":     "Trading Plan",
		},
		AnalyticsLabels: map[string]string{
			"pattern":    "Top Performing Patterns",
			"zone":       "Zone Performance",
			"entryType":  "Entry Type Performance",
			"rule":       "Rule3 Performance",
			"day":        "Day of Week Performance",
			"instrument": "Currency Pair Performance",
		},
		MissedAnalyticsLabels: map[string]string{
			"day":        "By Day of Week",
			"instrument": "By Pair",
			"pattern":    "Top Patterns Missed",
		},
		RiskFraction:        decimal.RequireFromString(DefaultRiskFraction),
		UppercaseInstrument: true,
		ChecklistWorkspace:  KeyForex,
		MinClosedTrades:     DefaultMinClosedTrades,
		MinMissedTrades:     5,
	}
}

// Options returns the option contracts workspace. It has no missed trades,
// no analytics and no risk amount.
func Options() Config {
	return Config{
		Key:         KeyOptions,
		Kind:        entity.WorkspaceKindOptions,
		Title:       "Options Trading Workspace",
		Description: "Track option contracts, cash flow, and post-trade notes for your call and put strategies.",
		Tables: Tables{
			Trades:            "options_trades",
			Balance:           "options_balance_history",
			Plan:              "options_trading_plan",
			ChecklistLogs:     "options_checklist_logs",
			ChecklistAttempts: "options_checklist_attempts",
		},
		TradeColumns: TradeColumns{
			ID:          "id",
			Instrument:  "ticker",
			Direction:   "position_side",
			OptionType:  "option_type",
			StrikePrice: "strike_price",
			ExpiryDate:  "expiry_date",
			Contracts:   "contracts",
			Premium:     "premium",
			EntryURL:    "entry_url",
			Notes:       "notes",
			Status:      "status",
			PnL:         "pnl",
			EntryDate:   "entry_date",
			ExitDate:    "exit_date",
			ExitURL:     "exit_url",
		},
		BalanceColumns:          balanceColumns(""),
		PlanColumns:             planColumns(),
		ChecklistLogColumns:     checklistLogColumns(),
		ChecklistAttemptColumns: checklistAttemptColumns(),
		Features:                Features{TradingPlan: true, Checklist: true},
		Vocabulary: Vocabulary{
			Directions:  longShort,
			OptionTypes: []Option{{Value: "call", Label: "Call"}, {Value: "put", Label: "Put"}},
		},
		FormDefaults: map[string]string{
			"direction":  "long",
			"optionType": "call",
		},
		Labels: map[string]string{
			"instrument":   "Ticker Symbol",
			"direction":    "Position",
			"optionType":   "Option Type",
			"strike":       "Strike Price ($)",
			"expiry":       "Expiration Date",
			"contracts":    "Contracts",
			"premium":      "Premium ($ per contract)",
			"pnl":          "P&L ($)",
			"planTitle":    "Options Playbook",
			"balanceTitle": "Options Account Balance",
		},
		RiskFraction:        decimal.RequireFromString(DefaultRiskFraction),
		UppercaseInstrument: true,
		ChecklistWorkspace:  KeyOptions,
		MinClosedTrades:     DefaultMinClosedTrades,
	}
}
