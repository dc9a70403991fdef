package service

import (
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/workspace"
)

// WorkspaceService exposes the workspace catalogue.
type WorkspaceService interface {
	List() []dto.WorkspaceSummary
	Describe(key string) (*dto.WorkspaceResponse, error)
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(registry *workspace.Registry) WorkspaceService {
	return &workspaceService{registry: registry}
}

type workspaceService struct {
	registry *workspace.Registry
}

func (s *workspaceService) List() []dto.WorkspaceSummary {
	all := s.registry.All()
	out := make([]dto.WorkspaceSummary, 0, len(all))
	for _, ws := range all {
		out = append(out, summarize(ws))
	}
	return out
}

func (s *workspaceService) Describe(key string) (*dto.WorkspaceResponse, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	return &dto.WorkspaceResponse{
		WorkspaceSummary:    summarize(ws),
		Fields:              tradeFields(ws.TradeColumns),
		Labels:              ws.Labels,
		Vocabulary:          ws.Vocabulary,
		FormDefaults:        ws.FormDefaults,
		MultiAccount:        ws.MultiAccount(),
		RiskFraction:        ws.RiskFraction,
		UppercaseInstrument: ws.UppercaseInstrument,
		MinClosedTrades:     ws.MinClosedTrades,
		MinMissedTrades:     ws.MinMissedTrades,
	}, nil
}

func summarize(ws workspace.Config) dto.WorkspaceSummary {
	return dto.WorkspaceSummary{
		Key:         ws.Key,
		Kind:        ws.Kind,
		Title:       ws.Title,
		Description: ws.Description,
		Features:    ws.Features,
	}
}

// tradeFields lists the logical fields that have a column in this workspace.
func tradeFields(c workspace.TradeColumns) []string {
	candidates := []struct {
		name, column string
	}{
		{"instrument", c.Instrument},
		{"direction", c.Direction},
		{"entry_type", c.EntryType},
		{"rule", c.Rule},
		{"zone", c.Zone},
		{"pattern", c.Pattern},
		{"stop_size", c.StopSize},
		{"risk_amount", c.RiskAmount},
		{"account", c.Account},
		{"option_type", c.OptionType},
		{"strike_price", c.StrikePrice},
		{"expiry_date", c.ExpiryDate},
		{"contracts", c.Contracts},
		{"premium", c.Premium},
		{"entry_url", c.EntryURL},
		{"notes", c.Notes},
		{"exit_url", c.ExitURL},
		{"pnl", c.PnL},
	}
	var out []string
	for _, f := range candidates {
		if f.column != "" {
			out = append(out, f.name)
		}
	}
	return out
}
