// Package workspace describes the per-product journal layouts. A Config is a
// declarative map from logical journal fields to the physical tables and
// columns of one workspace. An empty table or column name means the field
// does not exist in that workspace.
package workspace

import (
	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// Tables names the physical tables of a workspace.
type Tables struct {
	Trades            string `json:"trades"`
	Balance           string `json:"balance"`
	Missed            string `json:"missed,omitempty"`
	Plan              string `json:"plan,omitempty"`
	ChecklistLogs     string `json:"checklist_logs,omitempty"`
	ChecklistAttempts string `json:"checklist_attempts,omitempty"`
}

// TradeColumns maps logical trade fields to column names.
type TradeColumns struct {
	ID          string
	Instrument  string
	Direction   string
	StopSize    string
	RiskAmount  string
	EntryURL    string
	EntryType   string
	Rule        string
	Zone        string
	Pattern     string
	Notes       string
	Status      string
	PnL         string
	EntryDate   string
	ExitDate    string
	ExitURL     string
	Account     string
	OptionType  string
	StrikePrice string
	ExpiryDate  string
	Contracts   string
	Premium     string
}

// BalanceColumns maps logical ledger fields to column names.
type BalanceColumns struct {
	ID           string
	Balance      string
	ChangeAmount string
	Reason       string
	TradeID      string
	CreatedAt    string
	Currency     string
}

// MissedColumns maps logical missed-trade fields to column names.
type MissedColumns struct {
	ID              string
	Instrument      string
	Direction       string
	BeforeURL       string
	AfterURL        string
	Pattern         string
	PotentialReturn string
	CreatedAt       string
}

// PlanColumns maps logical trading plan fields to column names.
type PlanColumns struct {
	ID        string
	Content   string
	UpdatedAt string
}

// ChecklistLogColumns maps checklist log fields to column names.
type ChecklistLogColumns struct {
	ID        string
	TradeID   string
	Answers   string
	Zone      string
	Status    string
	Workspace string
	CreatedAt string
}

// ChecklistAttemptColumns maps checklist attempt fields to column names.
type ChecklistAttemptColumns struct {
	ID            string
	Answers       string
	Zone          string
	Status        string
	Workspace     string
	FailureReason string
	FailedItems   string
	CreatedAt     string
}

// Features toggles optional journal areas.
type Features struct {
	MissedTrades bool `json:"missed_trades"`
	Analytics    bool `json:"analytics"`
	TradingPlan  bool `json:"trading_plan"`
	Checklist    bool `json:"checklist"`
}

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Vocabulary holds the select options offered for trade and missed-trade forms.
type Vocabulary struct {
	Directions     []Option `json:"directions,omitempty"`
	EntryTypes     []Option `json:"entry_types,omitempty"`
	Rules          []Option `json:"rules,omitempty"`
	Zones          []Option `json:"zones,omitempty"`
	Patterns       []Option `json:"patterns,omitempty"`
	MissedPatterns []Option `json:"missed_patterns,omitempty"`
	OptionTypes    []Option `json:"option_types,omitempty"`
	Accounts       []Option `json:"accounts,omitempty"`
}

// Config is the full description of one workspace.
type Config struct {
	Key         string
	Kind        entity.WorkspaceKind
	Title       string
	Description string

	Tables                  Tables
	TradeColumns            TradeColumns
	BalanceColumns          BalanceColumns
	MissedColumns           MissedColumns
	PlanColumns             PlanColumns
	ChecklistLogColumns     ChecklistLogColumns
	ChecklistAttemptColumns ChecklistAttemptColumns

	Features   Features
	Vocabulary Vocabulary
	// FormDefaults holds initial values keyed by logical field name.
	FormDefaults          map[string]string
	Labels                map[string]string
	AnalyticsLabels       map[string]string
	MissedAnalyticsLabels map[string]string

	RiskFraction        decimal.Decimal
	UppercaseInstrument bool
	// ChecklistWorkspace is the value stored in the workspace column of the checklist tables.
	ChecklistWorkspace string

	MinClosedTrades int
	MinMissedTrades int
}

// Accounts returns the account keys of the workspace.
func (c Config) Accounts() []string {
	out := make([]string, 0, len(c.Vocabulary.Accounts))
	for _, a := range c.Vocabulary.Accounts {
		out = append(out, a.Value)
	}
	return out
}

// MultiAccount reports whether balances are partitioned by account.
func (c Config) MultiAccount() bool {
	return len(c.Vocabulary.Accounts) > 0 && c.BalanceColumns.Currency != ""
}

// HasAccount reports whether key is one of the workspace accounts.
func (c Config) HasAccount(key string) bool {
	for _, a := range c.Vocabulary.Accounts {
		if a.Value == key {
			return true
		}
	}
	return false
}

// RiskChecked reports whether new trades carry a risk amount that must be
// validated against the balance.
func (c Config) RiskChecked() bool {
	return c.TradeColumns.RiskAmount != ""
}

// ChecklistEnabled reports whether trade creation is gated by the checklist.
func (c Config) ChecklistEnabled() bool {
	return c.Features.Checklist && c.Tables.ChecklistAttempts != ""
}

// MissedEnabled reports whether missed trades can be logged.
func (c Config) MissedEnabled() bool {
	return c.Features.MissedTrades && c.Tables.Missed != ""
}

// PlanEnabled reports whether the trading plan is available.
func (c Config) PlanEnabled() bool {
	return c.Features.TradingPlan && c.Tables.Plan != ""
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Vocabulary = Vocabulary{
		Directions:     cloneOptions(c.Vocabulary.Directions),
		EntryTypes:     cloneOptions(c.Vocabulary.EntryTypes),
		Rules:          cloneOptions(c.Vocabulary.Rules),
		Zones:          cloneOptions(c.Vocabulary.Zones),
		Patterns:       cloneOptions(c.Vocabulary.Patterns),
		MissedPatterns: cloneOptions(c.Vocabulary.MissedPatterns),
		OptionTypes:    cloneOptions(c.Vocabulary.OptionTypes),
		Accounts:       cloneOptions(c.Vocabulary.Accounts),
	}
	out.FormDefaults = cloneMap(c.FormDefaults)
	out.Labels = cloneMap(c.Labels)
	out.AnalyticsLabels = cloneMap(c.AnalyticsLabels)
	out.MissedAnalyticsLabels = cloneMap(c.MissedAnalyticsLabels)
	return out
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
