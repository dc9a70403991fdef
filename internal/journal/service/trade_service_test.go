package service

import (
	"context"
	"testing"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTradeRiskLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.deposit(t, workspace.KeyForex, "", "10000")

	token := f.approve(t, workspace.KeyForex)
	_, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(token, "EURUSD", "50.01"))
	var riskErr *RiskLimitError
	require.ErrorAs(t, err, &riskErr)
	assert.Equal(t, "Risk exceeds 0.5% limit (50.00)", err.Error())

	// the approval survives a blocked attempt
	trade, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(token, "EURUSD", "50.00"))
	require.NoError(t, err)
	risk, _ := trade.RiskAmount()
	assert.True(t, risk.Equal(dec("50")))

	budget, err := f.tradeSvc.RiskBudget(ctx, workspace.KeyForex, "")
	require.NoError(t, err)
	assert.True(t, budget.MaxRisk.Equal(dec("50")))
	assert.True(t, budget.Balance.Equal(dec("10000")))
}

func TestCreateTradeRejectsNonPositiveRisk(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, workspace.KeyForex, "", "10000")

	_, err := f.tradeSvc.CreateTrade(context.Background(), workspace.KeyForex, forexRequest(f.approve(t, workspace.KeyForex), "EURUSD", "0"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "risk_amount", vErr.Field)
}

func TestCreateTradeApprovalToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.deposit(t, workspace.KeyForex, "", "10000")

	_, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest("", "EURUSD", "10"))
	assert.ErrorIs(t, err, ErrApprovalRequired)

	_, err = f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest("not-a-token", "EURUSD", "10"))
	assert.ErrorIs(t, err, ErrApprovalInvalid)

	stocksToken := f.approve(t, workspace.KeyStocks)
	_, err = f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(stocksToken, "EURUSD", "10"))
	assert.ErrorIs(t, err, ErrApprovalInvalid)

	token := f.approve(t, workspace.KeyForex)
	trade, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(token, "eurusd", "10"))
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", trade.Instrument)
	assert.Equal(t, entity.TradeStatusOpen, trade.Status)

	_, err = f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(token, "EURUSD", "10"))
	assert.ErrorIs(t, err, ErrApprovalInvalid)

	log, err := f.checklistSvc.TradeChecklist(ctx, workspace.KeyForex, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ID, log.TradeID)
	assert.Equal(t, "Green", log.Snapshot.Zone)
	assert.True(t, log.Snapshot.AllYes)

	_, err = f.checklistSvc.TradeChecklist(ctx, workspace.KeyForex, trade.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateTradeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   *dto.CreateTradeRequest
		field string
	}{
		{"blank instrument", &dto.CreateTradeRequest{Instrument: " ", Direction: "long"}, "instrument"},
		{"bad direction", &dto.CreateTradeRequest{Instrument: "EURUSD", Direction: "sideways"}, "direction"},
		{"bad zone", &dto.CreateTradeRequest{Instrument: "EURUSD", Direction: "long", Zone: "Purple"}, "zone"},
		{"bad pattern", &dto.CreateTradeRequest{Instrument: "EURUSD", Direction: "long", Pattern: "Cup"}, "pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	_, err := f.tradeSvc.CreateTrade(ctx, "crypto", &dto.CreateTradeRequest{Instrument: "BTC", Direction: "long"})
	assert.ErrorIs(t, err, workspace.ErrUnknownWorkspace)
}

func TestCloseTradeUpdatesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.deposit(t, workspace.KeyForex, "", "10000")

	flat, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(f.approve(t, workspace.KeyForex), "EURUSD", "20"))
	require.NoError(t, err)
	resp, err := f.tradeSvc.CloseTrade(ctx, workspace.KeyForex, flat.ID, &dto.CloseTradeRequest{PnL: decPtr("0")})
	require.NoError(t, err)
	assert.Nil(t, resp.BalanceEntry)
	assert.Equal(t, entity.TradeStatusClosed, resp.Trade.Status)
	f.notifier.wait(t)

	summary, err := f.balanceSvc.Summary(ctx, workspace.KeyForex)
	require.NoError(t, err)
	assert.Len(t, summary.Recent, 1)

	win, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyForex, forexRequest(f.approve(t, workspace.KeyForex), "GBPUSD", "20"))
	require.NoError(t, err)
	resp, err = f.tradeSvc.CloseTrade(ctx, workspace.KeyForex, win.ID, &dto.CloseTradeRequest{
		PnL:     decPtr("125.50"),
		ExitURL: "https://charts.example.com/exit",
		Notes:   "target hit",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BalanceEntry)
	assert.True(t, resp.BalanceEntry.Balance.Equal(dec("10125.5")))
	assert.True(t, resp.BalanceEntry.ChangeAmount.Equal(dec("125.5")))
	assert.Equal(t, "Trade P&L: GBPUSD long", resp.BalanceEntry.Reason)
	require.NotNil(t, resp.BalanceEntry.TradeID)
	assert.Equal(t, win.ID, *resp.BalanceEntry.TradeID)
	f.notifier.wait(t)

	summary, err = f.balanceSvc.Summary(ctx, workspace.KeyForex)
	require.NoError(t, err)
	assert.Len(t, summary.Recent, 2)
	assert.True(t, summary.Current.Equal(dec("10125.5")))

	_, err = f.tradeSvc.CloseTrade(ctx, workspace.KeyForex, win.ID, &dto.CloseTradeRequest{PnL: decPtr("1")})
	assert.ErrorIs(t, err, ErrTradeNotOpen)

	_, err = f.tradeSvc.CloseTrade(ctx, workspace.KeyForex, 9999, &dto.CloseTradeRequest{PnL: decPtr("1")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	require.Len(t, f.notifier.messages, 2)
	assert.Contains(t, f.notifier.messages[1], "GBPUSD long closed")
	assert.Contains(t, f.notifier.messages[1], "Balance: 10125.50")
}

func TestStocksAccountsArePartitioned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.deposit(t, workspace.KeyStocks, "CAD", "20000")
	f.deposit(t, workspace.KeyStocks, "USD", "4000")

	budget, err := f.tradeSvc.RiskBudget(ctx, workspace.KeyStocks, "CAD")
	require.NoError(t, err)
	assert.True(t, budget.MaxRisk.Equal(dec("100")))

	// 80 fits the CAD budget but not the USD one
	req := &dto.CreateTradeRequest{
		ApprovalToken: f.approve(t, workspace.KeyStocks),
		Instrument:    "shop",
		Direction:     "long",
		Pattern:       "Breakout",
		StopSize:      decPtr("1.25"),
		RiskAmount:    decPtr("80"),
		Account:       "USD",
	}
	_, err = f.tradeSvc.CreateTrade(ctx, workspace.KeyStocks, req)
	var riskErr *RiskLimitError
	require.ErrorAs(t, err, &riskErr)
	assert.True(t, riskErr.MaxRisk.Equal(dec("20")))

	req.Account = "CAD"
	trade, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyStocks, req)
	require.NoError(t, err)
	assert.Equal(t, "SHOP", trade.Instrument)
	assert.Equal(t, "CAD", trade.Account())
	setup, ok := trade.Setup()
	require.True(t, ok)
	assert.Equal(t, "Breakout", setup.EntryType, "form default applied")

	_, err = f.tradeSvc.CloseTrade(ctx, workspace.KeyStocks, trade.ID, &dto.CloseTradeRequest{PnL: decPtr("-80")})
	require.NoError(t, err)
	f.notifier.wait(t)

	summary, err := f.balanceSvc.Summary(ctx, workspace.KeyStocks)
	require.NoError(t, err)
	assert.True(t, summary.MultiAccount)
	require.Len(t, summary.Accounts, 2)
	assert.Equal(t, "CAD", summary.Accounts[0].Account)
	assert.True(t, summary.Accounts[0].Balance.Equal(dec("19920")))
	assert.True(t, summary.Accounts[1].Balance.Equal(dec("4000")))
	assert.True(t, summary.Current.Equal(dec("23920")))

	_, err = f.tradeSvc.RiskBudget(ctx, workspace.KeyStocks, "EUR")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestOptionsTrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tradeSvc.RiskBudget(ctx, workspace.KeyOptions, "")
	assert.ErrorIs(t, err, ErrFeatureDisabled)

	req := &dto.CreateTradeRequest{
		ApprovalToken: f.approve(t, workspace.KeyOptions),
		Instrument:    "spy",
		Direction:     "long",
		OptionType:    "put",
		StrikePrice:   decPtr("500"),
		ExpiryDate:    "2024-06-21",
		Contracts:     2,
		Premium:       decPtr("3.15"),
	}
	trade, err := f.tradeSvc.CreateTrade(ctx, workspace.KeyOptions, req)
	require.NoError(t, err)
	fields, ok := trade.Fields.(entity.OptionTradeFields)
	require.True(t, ok)
	assert.Equal(t, "put", fields.OptionType)
	assert.Equal(t, 2, fields.Contracts)
	require.NotNil(t, fields.ExpiryDate)
	assert.Equal(t, "2024-06-21", fields.ExpiryDate.Format("2006-01-02"))

	req.Contracts = 0
	_, err = f.tradeSvc.CreateTrade(ctx, workspace.KeyOptions, req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "contracts", vErr.Field)

	open, err := f.tradeSvc.ListTrades(ctx, workspace.KeyOptions, entity.TradeStatusOpen)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = f.tradeSvc.ListTrades(ctx, workspace.KeyOptions, "pending")
	assert.ErrorAs(t, err, &vErr)
}
