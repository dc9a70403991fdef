package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/analytics"
	"golang-trade-journal/internal/journal/checklist"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/common"
	"golang-trade-journal/pkg/logger"

	"github.com/google/uuid"
)

// ChecklistService runs the pre-trade gate and issues approvals.
type ChecklistService interface {
	Content(key string) (*dto.ChecklistResponse, error)
	Evaluate(key string, answers checklist.Answers) (*checklist.Evaluation, error)
	Approve(ctx context.Context, key string, answers checklist.Answers) (*dto.ApprovalResponse, error)
	LogAttempt(ctx context.Context, key string, answers checklist.Answers) (*entity.ChecklistAttempt, error)
	// Consume redeems an approval token. A token can be redeemed once.
	Consume(ctx context.Context, key, token string) (*entity.PendingApproval, error)
	// Release puts a consumed approval back until its original expiry.
	Release(ctx context.Context, approval *entity.PendingApproval) error
	Stats(ctx context.Context, key string) (*analytics.ChecklistReport, error)
	TradeChecklist(ctx context.Context, key string, tradeID int64) (*entity.ChecklistLog, error)
}

// ChecklistOptions tunes the checklist service.
type ChecklistOptions struct {
	ApprovalTTL time.Duration
	StatsLimit  int
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(registry *workspace.Registry, checklistRepo repository.ChecklistRepository, approvals cache.Cache, opts ChecklistOptions, logger *logger.Logger) ChecklistService {
	if opts.ApprovalTTL <= 0 {
		opts.ApprovalTTL = 15 * time.Minute
	}
	if opts.StatsLimit <= 0 {
		opts.StatsLimit = common.DefaultStatsLimit
	}
	return &checklistService{
		registry:      registry,
		checklistRepo: checklistRepo,
		approvals:     approvals,
		opts:          opts,
		logger:        logger,
	}
}

type checklistService struct {
	registry      *workspace.Registry
	checklistRepo repository.ChecklistRepository
	approvals     cache.Cache
	opts          ChecklistOptions
	logger        *logger.Logger
}

func (s *checklistService) workspace(key string) (workspace.Config, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return ws, err
	}
	return ws, requireFeature(ws.ChecklistEnabled())
}

func (s *checklistService) Content(key string) (*dto.ChecklistResponse, error) {
	if _, err := s.workspace(key); err != nil {
		return nil, err
	}
	zones := make([]string, len(checklist.Zones))
	copy(zones, checklist.Zones)
	return &dto.ChecklistResponse{
		Intro:    checklist.Intro,
		Sections: checklist.Sections(),
		Zones:    zones,
	}, nil
}

func (s *checklistService) Evaluate(key string, answers checklist.Answers) (*checklist.Evaluation, error) {
	if _, err := s.workspace(key); err != nil {
		return nil, err
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	ev := checklist.Evaluate(answers)
	return &ev, nil
}

// Approve records a passed attempt and issues a short-lived approval token.
func (s *checklistService) Approve(ctx context.Context, key string, answers checklist.Answers) (*dto.ApprovalResponse, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	ev := checklist.Evaluate(answers)
	if !ev.CanProceed {
		return nil, fmt.Errorf("%w: %s", ErrChecklistFailed, ev.FailureReason)
	}

	now := timeNow().UTC()
	snapshot := checklist.Snapshot(answers, now)
	if _, err := s.checklistRepo.InsertAttempt(ctx, ws, entity.ChecklistAttempt{
		Snapshot:  snapshot,
		Zone:      answers.Zone,
		Status:    entity.ChecklistStatusPassed,
		Workspace: ws.ChecklistWorkspace,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	approval := entity.PendingApproval{
		Token:     uuid.NewString(),
		Workspace: ws.Key,
		Snapshot:  snapshot,
		ExpiresAt: now.Add(s.opts.ApprovalTTL),
	}
	if err := cache.SetJSON(ctx, s.approvals, common.CacheKeyApproval+approval.Token, approval, s.opts.ApprovalTTL); err != nil {
		return nil, fmt.Errorf("failed to store approval: %w", err)
	}
	s.logger.Info("Checklist approved", logger.StringField("workspace", ws.Key), logger.StringField("zone", answers.Zone))

	return &dto.ApprovalResponse{
		Token:      approval.Token,
		ExpiresAt:  approval.ExpiresAt,
		Evaluation: ev,
	}, nil
}

// LogAttempt records the current answers as a failed attempt.
func (s *checklistService) LogAttempt(ctx context.Context, key string, answers checklist.Answers) (*entity.ChecklistAttempt, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	ev := checklist.Evaluate(answers)
	if !ev.HasAnyInput {
		return nil, invalid("answers", "answer at least one item before logging an attempt")
	}

	now := timeNow().UTC()
	return s.checklistRepo.InsertAttempt(ctx, ws, entity.ChecklistAttempt{
		Snapshot:      checklist.Snapshot(answers, now),
		Zone:          answers.Zone,
		Status:        entity.ChecklistStatusFailed,
		Workspace:     ws.ChecklistWorkspace,
		FailureReason: checklist.FailureReason(answers),
		FailedItems:   ev.FailedItems,
		CreatedAt:     now,
	})
}

func (s *checklistService) Consume(ctx context.Context, key, token string) (*entity.PendingApproval, error) {
	if token == "" {
		return nil, ErrApprovalRequired
	}
	raw, ok, err := s.approvals.Take(ctx, common.CacheKeyApproval+token)
	if err != nil {
		return nil, fmt.Errorf("failed to read approval: %w", err)
	}
	if !ok {
		return nil, ErrApprovalInvalid
	}
	var approval entity.PendingApproval
	if err := json.Unmarshal(raw, &approval); err != nil {
		return nil, ErrApprovalInvalid
	}
	if approval.Workspace != key || !timeNow().Before(approval.ExpiresAt) {
		return nil, ErrApprovalInvalid
	}
	return &approval, nil
}

func (s *checklistService) Release(ctx context.Context, approval *entity.PendingApproval) error {
	ttl := approval.ExpiresAt.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	if err := cache.SetJSON(ctx, s.approvals, common.CacheKeyApproval+approval.Token, approval, ttl); err != nil {
		return fmt.Errorf("failed to release approval: %w", err)
	}
	return nil
}

func (s *checklistService) Stats(ctx context.Context, key string) (*analytics.ChecklistReport, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	attempts, err := s.checklistRepo.RecentAttempts(ctx, ws, s.opts.StatsLimit)
	if err != nil {
		return nil, err
	}
	report := analytics.Checklist(attempts)
	return &report, nil
}

func (s *checklistService) TradeChecklist(ctx context.Context, key string, tradeID int64) (*entity.ChecklistLog, error) {
	ws, err := s.workspace(key)
	if err != nil {
		return nil, err
	}
	logs, err := s.checklistRepo.LogsForTrades(ctx, ws, []int64{tradeID})
	if err != nil {
		return nil, err
	}
	log, ok := logs[tradeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &log, nil
}

func validateAnswers(a checklist.Answers) error {
	if err := checklist.Validate(a); err != nil {
		if errors.Is(err, checklist.ErrInvalidAnswers) {
			return &ValidationError{Field: "answers", Message: err.Error()}
		}
		return err
	}
	return nil
}
