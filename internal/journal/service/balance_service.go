package service

import (
	"context"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/common"
	"golang-trade-journal/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	reasonDeposit    = "Deposit"
	reasonWithdrawal = "Withdrawal"
)

// BalanceService manages the balance ledger of a workspace.
type BalanceService interface {
	Summary(ctx context.Context, key string) (*dto.BalanceSummaryResponse, error)
	// Adjust appends a manual deposit or withdrawal.
	Adjust(ctx context.Context, key string, req *dto.BalanceAdjustRequest) (*entity.BalanceEntry, error)
}

// NewBalanceService creates a new balance service.
func NewBalanceService(registry *workspace.Registry, balanceRepo repository.BalanceRepository, recentLimit int, logger *logger.Logger) BalanceService {
	if recentLimit <= 0 {
		recentLimit = common.DefaultRecentLimit
	}
	return &balanceService{
		registry:    registry,
		balanceRepo: balanceRepo,
		recentLimit: recentLimit,
		logger:      logger,
	}
}

type balanceService struct {
	registry    *workspace.Registry
	balanceRepo repository.BalanceRepository
	recentLimit int
	logger      *logger.Logger
}

func (s *balanceService) Summary(ctx context.Context, key string) (*dto.BalanceSummaryResponse, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	return balanceSummary(ctx, s.balanceRepo, ws, s.recentLimit)
}

func (s *balanceService) Adjust(ctx context.Context, key string, req *dto.BalanceAdjustRequest) (*entity.BalanceEntry, error) {
	ws, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil || req.Amount.IsZero() {
		return nil, invalid("amount", "amount must not be zero")
	}
	account, err := resolveAccount(ws, req.Account)
	if err != nil {
		return nil, err
	}
	reason := req.Reason
	if reason == "" {
		reason = reasonDeposit
		if req.Amount.IsNegative() {
			reason = reasonWithdrawal
		}
	}

	entry, err := s.balanceRepo.Append(ctx, ws, entity.BalanceChange{
		Delta:   *req.Amount,
		Reason:  reason,
		Account: account,
	}, timeNow().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Balance adjusted",
		logger.StringField("workspace", ws.Key),
		logger.StringField("account", account),
		logger.StringField("amount", req.Amount.String()),
	)
	return entry, nil
}

func balanceSummary(ctx context.Context, repo repository.BalanceRepository, ws workspace.Config, recentLimit int) (*dto.BalanceSummaryResponse, error) {
	accounts, current, err := accountBalances(ctx, repo, ws)
	if err != nil {
		return nil, err
	}
	recent, err := repo.List(ctx, ws, "", recentLimit)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceSummaryResponse{
		Current:      current,
		MultiAccount: ws.MultiAccount(),
		Accounts:     accounts,
		Recent:       recent,
	}, nil
}

// accountBalances returns the balance of every account and their sum. Single
// balance workspaces report no accounts.
func accountBalances(ctx context.Context, repo repository.BalanceRepository, ws workspace.Config) ([]dto.AccountBalance, decimal.Decimal, error) {
	if !ws.MultiAccount() {
		current, err := currentBalance(ctx, repo, ws, "")
		return nil, current, err
	}
	var (
		out   []dto.AccountBalance
		total = decimal.Zero
	)
	for _, account := range ws.Accounts() {
		bal, err := currentBalance(ctx, repo, ws, account)
		if err != nil {
			return nil, decimal.Zero, err
		}
		out = append(out, dto.AccountBalance{Account: account, Balance: bal})
		total = total.Add(bal)
	}
	return out, total, nil
}

// currentBalance is the stored total of the latest ledger row, zero when the
// ledger is empty.
func currentBalance(ctx context.Context, repo repository.BalanceRepository, ws workspace.Config, account string) (decimal.Decimal, error) {
	latest, err := repo.Latest(ctx, ws, account)
	if err != nil {
		return decimal.Zero, err
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.Balance, nil
}

// resolveAccount validates account for multi-account workspaces, falling back
// to the form default. Other workspaces ignore it.
func resolveAccount(ws workspace.Config, account string) (string, error) {
	if !ws.MultiAccount() {
		return "", nil
	}
	if account == "" {
		account = ws.FormDefaults["account"]
	}
	if account == "" && len(ws.Accounts()) > 0 {
		account = ws.Accounts()[0]
	}
	if !ws.HasAccount(account) {
		return "", invalid("account", "unknown account %q", account)
	}
	return account, nil
}
