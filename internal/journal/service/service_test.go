package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-trade-journal/internal/journal/checklist"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/journaltest"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 6, 13, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	sent     chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan struct{}, 16)}
}

func (n *recordingNotifier) SendMessage(_ context.Context, text string) error {
	n.mu.Lock()
	n.messages = append(n.messages, text)
	n.mu.Unlock()
	n.sent <- struct{}{}
	return nil
}

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	select {
	case <-n.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
	}
}

type fixture struct {
	registry   *workspace.Registry
	trades     repository.TradeRepository
	balances   repository.BalanceRepository
	checklists repository.ChecklistRepository
	notifier   *recordingNotifier

	workspaceSvc WorkspaceService
	checklistSvc ChecklistService
	tradeSvc     TradeService
	balanceSvc   BalanceService
	historySvc   HistoryService
	missedSvc    MissedTradeService
	planSvc      PlanService
	digestSvc    DigestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	timeNow = func() time.Time { return t0 }
	t.Cleanup(func() { timeNow = time.Now })

	registry := workspace.Default()
	db := journaltest.NewDB(t, registry.All()...)
	log := logger.NewNop()
	c := cache.NewMemory(time.Minute)
	store := repository.NewCachedStore(repository.NewStore(db), c, time.Minute, log)

	f := &fixture{
		registry:   registry,
		trades:     repository.NewTradeRepository(store),
		balances:   repository.NewBalanceRepository(store),
		checklists: repository.NewChecklistRepository(store),
		notifier:   newRecordingNotifier(),
	}
	missed := repository.NewMissedTradeRepository(store)
	plans := repository.NewPlanRepository(store)

	f.workspaceSvc = NewWorkspaceService(registry)
	f.checklistSvc = NewChecklistService(registry, f.checklists, c, ChecklistOptions{ApprovalTTL: 15 * time.Minute}, log)
	f.tradeSvc = NewTradeService(registry, f.trades, f.balances, f.checklists, f.checklistSvc, f.notifier, log)
	f.balanceSvc = NewBalanceService(registry, f.balances, 10, log)
	f.historySvc = NewHistoryService(registry, f.trades, f.balances, f.checklists, time.UTC, 10, log)
	f.missedSvc = NewMissedTradeService(registry, missed, time.UTC, log)
	f.planSvc = NewPlanService(registry, plans, log)
	f.digestSvc = NewDigestService(registry, f.trades, f.balances, f.notifier, "0 21 * * *", time.UTC, log)
	return f
}

func (f *fixture) deposit(t *testing.T, ws, account, amount string) {
	t.Helper()
	_, err := f.balanceSvc.Adjust(context.Background(), ws, &dto.BalanceAdjustRequest{Amount: decPtr(amount), Account: account})
	require.NoError(t, err)
}

func (f *fixture) approve(t *testing.T, ws string) string {
	t.Helper()
	resp, err := f.checklistSvc.Approve(context.Background(), ws, checklist.AllYes(checklist.ZoneGreen))
	require.NoError(t, err)
	return resp.Token
}

func forexRequest(token, pair, risk string) *dto.CreateTradeRequest {
	return &dto.CreateTradeRequest{
		ApprovalToken: token,
		Instrument:    pair,
		Direction:     "long",
		EntryType:     "RE",
		Rule:          "Impulsive",
		Zone:          "Green",
		Pattern:       "Bull Flag",
		StopSize:      decPtr("0.0025"),
		RiskAmount:    decPtr(risk),
	}
}
