package service

import (
	"context"
	"strings"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/analytics"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/logger"
)

// MissedTradeService records opportunities that were not taken.
type MissedTradeService interface {
	List(ctx context.Context, key string) ([]entity.MissedTrade, error)
	Create(ctx context.Context, key string, req *dto.CreateMissedTradeRequest) (*entity.MissedTrade, error)
	Analytics(ctx context.Context, key string) (*analytics.MissedReport, error)
}

// NewMissedTradeService creates a new missed trade service.
func NewMissedTradeService(registry *workspace.Registry, missedRepo repository.MissedTradeRepository, loc *time.Location, logger *logger.Logger) MissedTradeService {
	return &missedTradeService{
		registry:   registry,
		missedRepo: missedRepo,
		loc:        loc,
		logger:     logger,
	}
}

type missedTradeService struct {
	registry   *workspace.Registry
	missedRepo repository.MissedTradeRepository
	loc        *time.Location
	logger     *logger.Logger
}

func (s *missedTradeService) workspace(key string) (workspace.Config, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return ws, err
	}
	return ws, requireFeature(ws.MissedEnabled())
}

func (s *missedTradeService) List(ctx context.Context, key string) ([]entity.MissedTrade, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	return s.missedRepo.List(ctx, ws)
}

func (s *missedTradeService) Create(ctx context.Context, key string, req *dto.CreateMissedTradeRequest) (*entity.MissedTrade, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	instrument := strings.TrimSpace(req.Instrument)
	if instrument == "" {
		return nil, invalid("instrument", "instrument is required")
	}
	if !allowed(ws.Vocabulary.Directions, req.Direction) {
		return nil, invalid("direction", "unsupported direction %q", req.Direction)
	}
	if req.Pattern != "" && !allowed(ws.Vocabulary.MissedPatterns, req.Pattern) {
		return nil, invalid("pattern", "unsupported value %q", req.Pattern)
	}
	if req.PotentialReturn == nil {
		return nil, invalid("potential_return", "potential return is required")
	}

	missed, err := s.missedRepo.Insert(ctx, ws, entity.MissedTrade{
		Instrument:      instrument,
		Direction:       req.Direction,
		BeforeURL:       req.BeforeURL,
		AfterURL:        req.AfterURL,
		Pattern:         req.Pattern,
		PotentialReturn: *req.PotentialReturn,
		CreatedAt:       timeNow().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Missed trade logged", logger.StringField("workspace", ws.Key), logger.StringField("instrument", missed.Instrument))
	return missed, nil
}

func (s *missedTradeService) Analytics(ctx context.Context, key string) (*analytics.MissedReport, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	missed, err := s.missedRepo.List(ctx, ws)
	if err != nil {
		return nil, err
	}
	report := analytics.Missed(missed, analytics.MissedOptions{
		MinMissed: ws.MinMissedTrades,
		Location:  s.loc,
		Labels:    ws.MissedAnalyticsLabels,
	})
	return &report, nil
}
