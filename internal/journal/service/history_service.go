package service

import (
	"context"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/analytics"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/common"
	"golang-trade-journal/pkg/logger"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// HistoryService assembles the trade history view.
type HistoryService interface {
	// History lists trades matching status with their performance summary.
	// Analytics always cover every closed trade of the workspace.
	History(ctx context.Context, key string, status entity.TradeStatus) (*dto.HistoryResponse, error)
}

// NewHistoryService creates a new history service.
func NewHistoryService(
	registry *workspace.Registry,
	tradeRepo repository.TradeRepository,
	balanceRepo repository.BalanceRepository,
	checklistRepo repository.ChecklistRepository,
	loc *time.Location,
	recentLimit int,
	logger *logger.Logger,
) HistoryService {
	if recentLimit <= 0 {
		recentLimit = common.DefaultRecentLimit
	}
	return &historyService{
		registry:      registry,
		tradeRepo:     tradeRepo,
		balanceRepo:   balanceRepo,
		checklistRepo: checklistRepo,
		loc:           loc,
		recentLimit:   recentLimit,
		logger:        logger,
	}
}

type historyService struct {
	registry      *workspace.Registry
	tradeRepo     repository.TradeRepository
	balanceRepo   repository.BalanceRepository
	checklistRepo repository.ChecklistRepository
	loc           *time.Location
	recentLimit   int
	logger        *logger.Logger
}

func (s *historyService) History(ctx context.Context, key string, status entity.TradeStatus) (*dto.HistoryResponse, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	all, err := s.tradeRepo.List(ctx, ws, "")
	if err != nil {
		return nil, err
	}
	var trades []entity.Trade
	for _, t := range all {
		if status == "" || t.Status == status {
			trades = append(trades, t)
		}
	}

	balance, err := balanceSummary(ctx, s.balanceRepo, ws, s.recentLimit)
	if err != nil {
		return nil, err
	}

	resp := summarizeTrades(trades, balance.Current)
	resp.Balance = *balance
	resp.Trades = s.attachChecklists(ctx, ws, trades)

	if ws.Features.Analytics {
		report := analytics.Trades(all, analytics.TradeOptions{
			MinTrades: ws.MinClosedTrades,
			Location:  s.loc,
			Labels:    ws.AnalyticsLabels,
		})
		resp.Analytics = &report
	}
	return resp, nil
}

// attachChecklists pairs trades with their checklist logs. A failed lookup
// leaves the trades without snapshots.
func (s *historyService) attachChecklists(ctx context.Context, ws workspace.Config, trades []entity.Trade) []dto.TradeWithChecklist {
	out := make([]dto.TradeWithChecklist, 0, len(trades))
	var logs map[int64]entity.ChecklistLog
	if ws.ChecklistEnabled() && len(trades) > 0 {
		ids := make([]int64, 0, len(trades))
		for _, t := range trades {
			ids = append(ids, t.ID)
		}
		var err error
		logs, err = s.checklistRepo.LogsForTrades(ctx, ws, ids)
		if err != nil {
			s.logger.Warn("Failed to load checklist logs", logger.StringField("workspace", ws.Key), logger.ErrorField(err))
		}
	}
	for _, t := range trades {
		item := dto.TradeWithChecklist{Trade: t}
		if l, ok := logs[t.ID]; ok {
			l := l
			item.Checklist = &l
		}
		out = append(out, item)
	}
	return out
}

func summarizeTrades(trades []entity.Trade, balance decimal.Decimal) *dto.HistoryResponse {
	resp := &dto.HistoryResponse{Total: len(trades)}
	for _, t := range trades {
		switch t.Status {
		case entity.TradeStatusOpen:
			resp.Open++
		case entity.TradeStatusClosed:
			resp.Closed++
		}
		if t.PnL == nil {
			continue
		}
		resp.TotalPnL = resp.TotalPnL.Add(*t.PnL)
		switch t.PnL.Sign() {
		case 1:
			resp.Wins++
		case -1:
			resp.Losses++
		}
	}
	if decided := resp.Wins + resp.Losses; decided > 0 {
		resp.WinRate = decimal.NewFromInt(int64(resp.Wins)).Mul(hundred).Div(decimal.NewFromInt(int64(decided))).Round(1)
	}
	if balance.IsPositive() {
		resp.PnLPercent = resp.TotalPnL.Div(balance).Mul(hundred).Round(2)
	}
	return resp
}
