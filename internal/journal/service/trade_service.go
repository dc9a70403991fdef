package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/logger"
	"golang-trade-journal/pkg/telegram"
	"golang-trade-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

// TradeService handles the trade lifecycle.
type TradeService interface {
	ListTrades(ctx context.Context, key string, status entity.TradeStatus) ([]entity.Trade, error)
	// CreateTrade opens a trade. Workspaces gated by the checklist require an
	// unused approval token in the request.
	CreateTrade(ctx context.Context, key string, req *dto.CreateTradeRequest) (*entity.Trade, error)
	CloseTrade(ctx context.Context, key string, id int64, req *dto.CloseTradeRequest) (*dto.CloseTradeResponse, error)
	RiskBudget(ctx context.Context, key, account string) (*dto.RiskBudgetResponse, error)
}

// NewTradeService creates a new trade service. notifier may be nil.
func NewTradeService(
	registry *workspace.Registry,
	tradeRepo repository.TradeRepository,
	balanceRepo repository.BalanceRepository,
	checklistRepo repository.ChecklistRepository,
	checklistSvc ChecklistService,
	notifier telegram.Notifier,
	logger *logger.Logger,
) TradeService {
	return &tradeService{
		registry:      registry,
		tradeRepo:     tradeRepo,
		balanceRepo:   balanceRepo,
		checklistRepo: checklistRepo,
		checklistSvc:  checklistSvc,
		notifier:      notifier,
		logger:        logger,
	}
}

type tradeService struct {
	registry      *workspace.Registry
	tradeRepo     repository.TradeRepository
	balanceRepo   repository.BalanceRepository
	checklistRepo repository.ChecklistRepository
	checklistSvc  ChecklistService
	notifier      telegram.Notifier
	logger        *logger.Logger
}

func (s *tradeService) ListTrades(ctx context.Context, key string, status entity.TradeStatus) ([]entity.Trade, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	return s.tradeRepo.List(ctx, ws, status)
}

func (s *tradeService) CreateTrade(ctx context.Context, key string, req *dto.CreateTradeRequest) (*entity.Trade, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	trade, err := buildTrade(ws, req)
	if err != nil {
		return nil, err
	}
	if ws.ChecklistEnabled() && req.ApprovalToken == "" {
		return nil, ErrApprovalRequired
	}

	if ws.RiskChecked() {
		if err := s.checkRisk(ctx, ws, trade); err != nil {
			return nil, err
		}
	}

	var approval *entity.PendingApproval
	if ws.ChecklistEnabled() {
		approval, err = s.checklistSvc.Consume(ctx, ws.Key, req.ApprovalToken)
		if err != nil {
			return nil, err
		}
	}

	now := timeNow().UTC()
	trade.EntryDate = now
	created, err := s.tradeRepo.Insert(ctx, ws, trade)
	if err != nil {
		if approval != nil {
			if rerr := s.checklistSvc.Release(ctx, approval); rerr != nil {
				s.logger.Error("Failed to release checklist approval",
					logger.StringField("workspace", ws.Key),
					logger.ErrorField(rerr),
				)
			}
		}
		return nil, err
	}
	s.logger.Info("Trade opened",
		logger.StringField("workspace", ws.Key),
		logger.Int64Field("trade_id", created.ID),
		logger.StringField("instrument", created.Instrument),
	)

	if approval != nil {
		if _, err := s.checklistRepo.InsertLog(ctx, ws, entity.ChecklistLog{
			TradeID:   created.ID,
			Snapshot:  approval.Snapshot,
			Zone:      approval.Snapshot.Zone,
			Status:    entity.ChecklistStatusPassed,
			Workspace: ws.ChecklistWorkspace,
			CreatedAt: now,
		}); err != nil {
			s.logger.Error("Failed to save checklist log",
				logger.StringField("workspace", ws.Key),
				logger.Int64Field("trade_id", created.ID),
				logger.ErrorField(err),
			)
		}
	}
	return created, nil
}

func (s *tradeService) checkRisk(ctx context.Context, ws workspace.Config, trade entity.Trade) error {
	risk, _ := trade.RiskAmount()
	if !risk.IsPositive() {
		return invalid("risk_amount", "risk amount must be greater than zero")
	}
	budget, err := riskBudget(ctx, s.balanceRepo, ws, trade.Account())
	if err != nil {
		return err
	}
	if risk.GreaterThan(budget.MaxRisk) {
		return &RiskLimitError{RiskAmount: risk, MaxRisk: budget.MaxRisk, RiskFraction: budget.RiskFraction}
	}
	return nil
}

func (s *tradeService) CloseTrade(ctx context.Context, key string, id int64, req *dto.CloseTradeRequest) (*dto.CloseTradeResponse, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	trade, err := s.tradeRepo.FindByID(ctx, ws, id)
	if err != nil {
		return nil, err
	}
	if trade.Status != entity.TradeStatusOpen {
		return nil, ErrTradeNotOpen
	}

	pnl := orZero(req.PnL)
	now := timeNow().UTC()
	closed, err := s.tradeRepo.Close(ctx, ws, id, entity.TradeClose{
		ExitURL: req.ExitURL,
		PnL:     pnl,
		Notes:   req.Notes,
	}, now)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTradeNotOpen
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.CloseTradeResponse{Trade: *closed}
	if !pnl.IsZero() {
		resp.BalanceEntry = s.recordPnL(ctx, ws, *closed, pnl, now)
	}
	s.logger.Info("Trade closed",
		logger.StringField("workspace", ws.Key),
		logger.Int64Field("trade_id", closed.ID),
		logger.StringField("pnl", pnl.String()),
	)
	s.notifyClosed(ws, *closed, resp.BalanceEntry)
	return resp, nil
}

// recordPnL appends the realised P&L to the ledger. The trade stays closed
// when the append fails.
func (s *tradeService) recordPnL(ctx context.Context, ws workspace.Config, trade entity.Trade, pnl decimal.Decimal, at time.Time) *entity.BalanceEntry {
	account := trade.Account()
	if ws.MultiAccount() {
		resolved, err := resolveAccount(ws, account)
		if err != nil {
			s.logger.Error("Failed to resolve trade account", logger.Int64Field("trade_id", trade.ID), logger.ErrorField(err))
			return nil
		}
		account = resolved
	}
	tradeID := trade.ID
	entry, err := s.balanceRepo.Append(ctx, ws, entity.BalanceChange{
		Delta:   pnl,
		Reason:  strings.TrimSpace(fmt.Sprintf("Trade P&L: %s %s", trade.Instrument, trade.Direction)),
		Account: account,
		TradeID: &tradeID,
	}, at)
	if err != nil {
		s.logger.Error("Failed to update balance after close",
			logger.StringField("workspace", ws.Key),
			logger.Int64Field("trade_id", trade.ID),
			logger.ErrorField(err),
		)
		return nil
	}
	return entry
}

func (s *tradeService) notifyClosed(ws workspace.Config, trade entity.Trade, entry *entity.BalanceEntry) {
	if s.notifier == nil || trade.PnL == nil {
		return
	}
	msg := telegram.TradeClosed{
		Workspace:  ws.Key,
		Instrument: trade.Instrument,
		Direction:  trade.Direction,
		PnL:        *trade.PnL,
		ClosedAt:   timeNow(),
	}
	if entry != nil {
		msg.Balance = &entry.Balance
	}
	utils.GoSafe(func() {
		if err := s.notifier.SendMessage(context.Background(), telegram.FormatTradeClosed(msg)); err != nil {
			s.logger.Warn("Failed to send trade notification", logger.Int64Field("trade_id", trade.ID), logger.ErrorField(err))
		}
	})
}

func (s *tradeService) RiskBudget(ctx context.Context, key, account string) (*dto.RiskBudgetResponse, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if !ws.RiskChecked() {
		return nil, ErrFeatureDisabled
	}
	account, err = resolveAccount(ws, account)
	if err != nil {
		return nil, err
	}
	return riskBudget(ctx, s.balanceRepo, ws, account)
}

func riskBudget(ctx context.Context, repo repository.BalanceRepository, ws workspace.Config, account string) (*dto.RiskBudgetResponse, error) {
	balance, err := currentBalance(ctx, repo, ws, account)
	if err != nil {
		return nil, err
	}
	return &dto.RiskBudgetResponse{
		Account:      account,
		Balance:      balance,
		RiskFraction: ws.RiskFraction,
		MaxRisk:      balance.Mul(ws.RiskFraction),
	}, nil
}

func validateStatus(status entity.TradeStatus) error {
	switch status {
	case "", entity.TradeStatusOpen, entity.TradeStatusClosed:
		return nil
	}
	return invalid("status", "status must be open or closed")
}

// buildTrade maps the request onto the trade fields of the workspace kind.
func buildTrade(ws workspace.Config, req *dto.CreateTradeRequest) (entity.Trade, error) {
	trade := entity.Trade{
		Workspace:  ws.Key,
		Instrument: strings.TrimSpace(req.Instrument),
		Direction:  req.Direction,
		EntryURL:   req.EntryURL,
		Notes:      req.Notes,
		Status:     entity.TradeStatusOpen,
	}
	if trade.Instrument == "" {
		return trade, invalid("instrument", "instrument is required")
	}
	if !allowed(ws.Vocabulary.Directions, trade.Direction) {
		return trade, invalid("direction", "unsupported direction %q", trade.Direction)
	}

	switch ws.Kind {
	case entity.WorkspaceKindStocks:
		setup, err := buildSetup(ws, req)
		if err != nil {
			return trade, err
		}
		account, err := resolveAccount(ws, req.Account)
		if err != nil {
			return trade, err
		}
		trade.Fields = entity.StockTradeFields{
			SetupFields: setup,
			StopSize:    orZero(req.StopSize),
			RiskAmount:  orZero(req.RiskAmount),
			Account:     account,
		}
	case entity.WorkspaceKindForex:
		setup, err := buildSetup(ws, req)
		if err != nil {
			return trade, err
		}
		trade.Fields = entity.ForexTradeFields{
			SetupFields: setup,
			StopSize:    orZero(req.StopSize),
			RiskAmount:  orZero(req.RiskAmount),
		}
	case entity.WorkspaceKindOptions:
		fields, err := buildOption(ws, req)
		if err != nil {
			return trade, err
		}
		trade.Fields = fields
	default:
		return trade, fmt.Errorf("unsupported workspace kind %q", ws.Kind)
	}
	return trade, nil
}

func buildSetup(ws workspace.Config, req *dto.CreateTradeRequest) (entity.SetupFields, error) {
	setup := entity.SetupFields{
		EntryType: withDefault(req.EntryType, ws.FormDefaults["entryType"]),
		Rule:      withDefault(req.Rule, ws.FormDefaults["rule"]),
		Zone:      withDefault(req.Zone, ws.FormDefaults["zone"]),
		Pattern:   req.Pattern,
	}
	checks := []struct {
		field, value string
		vocab        []workspace.Option
	}{
		{"entry_type", setup.EntryType, ws.Vocabulary.EntryTypes},
		{"rule", setup.Rule, ws.Vocabulary.Rules},
		{"zone", setup.Zone, ws.Vocabulary.Zones},
		{"pattern", setup.Pattern, ws.Vocabulary.Patterns},
	}
	for _, c := range checks {
		if c.value != "" && !allowed(c.vocab, c.value) {
			return setup, invalid(c.field, "unsupported value %q", c.value)
		}
	}
	if req.StopSize != nil && req.StopSize.IsNegative() {
		return setup, invalid("stop_size", "stop size must not be negative")
	}
	return setup, nil
}

func buildOption(ws workspace.Config, req *dto.CreateTradeRequest) (entity.OptionTradeFields, error) {
	fields := entity.OptionTradeFields{
		OptionType:  withDefault(req.OptionType, ws.FormDefaults["optionType"]),
		StrikePrice: orZero(req.StrikePrice),
		Contracts:   req.Contracts,
		Premium:     orZero(req.Premium),
	}
	if !allowed(ws.Vocabulary.OptionTypes, fields.OptionType) {
		return fields, invalid("option_type", "unsupported option type %q", fields.OptionType)
	}
	if !fields.StrikePrice.IsPositive() {
		return fields, invalid("strike_price", "strike price must be greater than zero")
	}
	if fields.Contracts <= 0 {
		return fields, invalid("contracts", "contracts must be greater than zero")
	}
	if fields.Premium.IsNegative() {
		return fields, invalid("premium", "premium must not be negative")
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return fields, invalid("expiry_date", "expiry date must be YYYY-MM-DD")
		}
		fields.ExpiryDate = &expiry
	}
	return fields, nil
}

// allowed reports whether v is one of the options. An empty vocabulary allows anything.
func allowed(opts []workspace.Option, v string) bool {
	if len(opts) == 0 {
		return true
	}
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
