package service

import (
	"context"
	"fmt"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/logger"
	"golang-trade-journal/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// DigestService sends a periodic journal summary.
type DigestService interface {
	// Start runs the digest on its cron schedule until ctx is done.
	Start(ctx context.Context) error
	// Run builds and sends one digest.
	Run(ctx context.Context) error
	Build(ctx context.Context) ([]telegram.WorkspaceDigest, error)
}

// NewDigestService creates a new digest service.
func NewDigestService(
	registry *workspace.Registry,
	tradeRepo repository.TradeRepository,
	balanceRepo repository.BalanceRepository,
	notifier telegram.Notifier,
	spec string,
	loc *time.Location,
	logger *logger.Logger,
) DigestService {
	if loc == nil {
		loc = time.UTC
	}
	return &digestService{
		registry:    registry,
		tradeRepo:   tradeRepo,
		balanceRepo: balanceRepo,
		notifier:    notifier,
		spec:        spec,
		loc:         loc,
		cronParser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		logger:      logger,
	}
}

type digestService struct {
	registry    *workspace.Registry
	tradeRepo   repository.TradeRepository
	balanceRepo repository.BalanceRepository
	notifier    telegram.Notifier
	spec        string
	loc         *time.Location
	cronParser  cron.Parser
	logger      *logger.Logger
}

func (s *digestService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc), cron.WithParser(s.cronParser))
	if _, err := c.AddFunc(s.spec, func() {
		if err := s.Run(ctx); err != nil {
			s.logger.Error("Failed to send journal digest", logger.ErrorField(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.spec, err)
	}

	c.Start()
	s.logger.Info("Digest scheduler started", logger.StringField("cron", s.spec), logger.StringField("location", s.loc.String()))
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("Digest scheduler stopped")
	return nil
}

func (s *digestService) Run(ctx context.Context) error {
	digests, err := s.Build(ctx)
	if err != nil {
		return err
	}
	for _, msg := range telegram.FormatDigest(timeNow().In(s.loc), digests) {
		if err := s.notifier.SendMessage(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Build summarises every workspace over the last 24 hours.
func (s *digestService) Build(ctx context.Context) ([]telegram.WorkspaceDigest, error) {
	since := timeNow().Add(-24 * time.Hour)
	var out []telegram.WorkspaceDigest
	for _, ws := range s.registry.All() {
		trades, err := s.tradeRepo.List(ctx, ws, "")
		if err != nil {
			return nil, err
		}
		_, balance, err := accountBalances(ctx, s.balanceRepo, ws)
		if err != nil {
			return nil, err
		}
		d := telegram.WorkspaceDigest{Title: ws.Title, Balance: balance}
		summary := summarizeTrades(trades, balance)
		d.OpenTrades = summary.Open
		d.ClosedTrades = summary.Wins + summary.Losses
		d.WinRate = summary.WinRate
		d.PnLToday = decimal.Zero
		for _, t := range trades {
			if t.Status != entity.TradeStatusClosed || t.ExitDate == nil || t.ExitDate.Before(since) {
				continue
			}
			d.ClosedToday++
			if t.PnL != nil {
				d.PnLToday = d.PnLToday.Add(*t.PnL)
			}
		}
		out = append(out, d)
	}
	return out, nil
}
