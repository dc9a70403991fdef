package service

import (
	"context"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/logger"
)

// PlanService stores the single trading plan of a workspace.
type PlanService interface {
	Load(ctx context.Context, key string) (*entity.TradingPlan, error)
	Save(ctx context.Context, key, content string) (*entity.TradingPlan, error)
}

// NewPlanService creates a new plan service.
func NewPlanService(registry *workspace.Registry, planRepo repository.PlanRepository, logger *logger.Logger) PlanService {
	return &planService{registry: registry, planRepo: planRepo, logger: logger}
}

type planService struct {
	registry *workspace.Registry
	planRepo repository.PlanRepository
	logger   *logger.Logger
}

func (s *planService) workspace(key string) (workspace.Config, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return ws, err
	}
	return ws, requireFeature(ws.PlanEnabled())
}

// Load returns the plan, or an empty plan when none was saved yet.
func (s *planService) Load(ctx context.Context, key string) (*entity.TradingPlan, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.Load(ctx, ws)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return &entity.TradingPlan{}, nil
	}
	return plan, nil
}

func (s *planService) Save(ctx context.Context, key, content string) (*entity.TradingPlan, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.Save(ctx, ws, content, timeNow().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Trading plan saved", logger.StringField("workspace", ws.Key), logger.Int64Field("plan_id", plan.ID))
	return plan, nil
}
