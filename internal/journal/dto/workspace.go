package dto

import (
	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"

	"github.com/shopspring/decimal"
)

// WorkspaceSummary is the catalogue entry of one workspace.
type WorkspaceSummary struct {
	Key         string               `json:"key"`
	Kind        entity.WorkspaceKind `json:"kind"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Features    workspace.Features   `json:"features"`
}

// WorkspaceResponse describes the forms of one workspace.
type WorkspaceResponse struct {
	WorkspaceSummary
	// Fields lists the logical trade fields stored by this workspace.
	Fields              []string             `json:"fields"`
	Labels              map[string]string    `json:"labels"`
	Vocabulary          workspace.Vocabulary `json:"vocabulary"`
	FormDefaults        map[string]string    `json:"form_defaults"`
	MultiAccount        bool                 `json:"multi_account"`
	RiskFraction        decimal.Decimal      `json:"risk_fraction" swaggertype:"string"`
	UppercaseInstrument bool                 `json:"uppercase_instrument"`
	MinClosedTrades     int                  `json:"min_closed_trades"`
	MinMissedTrades     int                  `json:"min_missed_trades,omitempty"`
}
