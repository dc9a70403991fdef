package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/journaltest"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 6, 13, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) Store {
	t.Helper()
	db := journaltest.NewDB(t, workspace.Stocks(), workspace.Forex(), workspace.Options())
	return NewStore(db)
}

func forexTrade(pair string) entity.Trade {
	return entity.Trade{
		Instrument: pair,
		Direction:  "long",
		EntryDate:  t0,
		Fields: entity.ForexTradeFields{
			SetupFields: entity.SetupFields{EntryType: "RE", Rule: "Impulsive", Zone: "Green", Pattern: "Bull Flag"},
			StopSize:    dec("0.0025"),
			RiskAmount:  dec("50"),
		},
	}
}

func TestTradePayloadOmitsMissingColumns(t *testing.T) {
	for _, ws := range []workspace.Config{workspace.Stocks(), workspace.Forex(), workspace.Options()} {
		t.Run(ws.Key, func(t *testing.T) {
			var fields entity.TradeFields
			switch ws.Kind {
			case entity.WorkspaceKindStocks:
				fields = entity.StockTradeFields{RiskAmount: dec("10"), Account: "USD"}
			case entity.WorkspaceKindForex:
				fields = entity.ForexTradeFields{RiskAmount: dec("10")}
			default:
				fields = entity.OptionTradeFields{OptionType: "call", Contracts: 2}
			}

			row, err := tradePayload(ws, entity.Trade{Instrument: "x", Direction: "long", EntryDate: t0, Fields: fields})
			require.NoError(t, err)
			assert.NotContains(t, row, "")
			assert.Equal(t, "open", row[ws.TradeColumns.Status])
			assert.Equal(t, "X", row[ws.TradeColumns.Instrument])
		})
	}

	opt, err := tradePayload(workspace.Options(), entity.Trade{Fields: entity.OptionTradeFields{}})
	require.NoError(t, err)
	assert.NotContains(t, opt, "risk_amount")
	assert.NotContains(t, opt, "stopsize")
	assert.NotContains(t, opt, "account_currency")

	forex, err := tradePayload(workspace.Forex(), forexTrade("eurusd"))
	require.NoError(t, err)
	assert.NotContains(t, forex, "account_currency")
	assert.Contains(t, forex, "pair")
}

func TestTradePayloadRejectsWrongKind(t *testing.T) {
	_, err := tradePayload(workspace.Options(), forexTrade("EURUSD"))
	assert.Error(t, err)

	_, err = tradePayload(workspace.Forex(), entity.Trade{Instrument: "EURUSD"})
	assert.Error(t, err)
}

func TestTradeLifecycle(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	repo := NewTradeRepository(newStore(t))

	in := forexTrade("eurusd")
	in.Notes = "first entry"
	created, err := repo.Insert(ctx, ws, in)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "EURUSD", created.Instrument)
	assert.Equal(t, entity.TradeStatusOpen, created.Status)
	assert.Nil(t, created.PnL)
	assert.True(t, created.EntryDate.Equal(t0))
	fields, ok := created.Fields.(entity.ForexTradeFields)
	require.True(t, ok)
	assert.Equal(t, "Bull Flag", fields.Pattern)
	assert.True(t, fields.RiskAmount.Equal(dec("50")))

	later := forexTrade("GBPUSD")
	later.EntryDate = t0.Add(time.Hour)
	_, err = repo.Insert(ctx, ws, later)
	require.NoError(t, err)

	all, err := repo.List(ctx, ws, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "GBPUSD", all[0].Instrument)

	closed, err := repo.Close(ctx, ws, created.ID, entity.TradeClose{PnL: dec("-25.5"), ExitURL: "https://chart/exit"}, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusClosed, closed.Status)
	require.NotNil(t, closed.PnL)
	assert.True(t, closed.PnL.Equal(dec("-25.5")))
	assert.Equal(t, "first entry", closed.Notes)
	assert.Equal(t, "https://chart/exit", closed.ExitURL)
	require.NotNil(t, closed.ExitDate)

	open, err := repo.List(ctx, ws, entity.TradeStatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "GBPUSD", open[0].Instrument)

	_, err = repo.Close(ctx, ws, created.ID, entity.TradeClose{PnL: dec("1")}, t0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, ws, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOptionTradeRoundTrip(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Options()
	repo := NewTradeRepository(newStore(t))

	expiry := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	created, err := repo.Insert(ctx, ws, entity.Trade{
		Instrument: "aapl",
		Direction:  "short",
		EntryDate:  t0,
		Fields: entity.OptionTradeFields{
			OptionType:  "put",
			StrikePrice: dec("180"),
			ExpiryDate:  &expiry,
			Contracts:   3,
			Premium:     dec("2.15"),
		},
	})
	require.NoError(t, err)

	f, ok := created.Fields.(entity.OptionTradeFields)
	require.True(t, ok)
	assert.Equal(t, "AAPL", created.Instrument)
	assert.Equal(t, "short", created.Direction)
	assert.Equal(t, 3, f.Contracts)
	assert.True(t, f.Premium.Equal(dec("2.15")))
	require.NotNil(t, f.ExpiryDate)
	assert.True(t, f.ExpiryDate.Equal(expiry))
}

func TestBalanceAppendRunningTotal(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	repo := NewBalanceRepository(newStore(t))

	latest, err := repo.Latest(ctx, ws, "")
	require.NoError(t, err)
	assert.Nil(t, latest)

	first, err := repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("10000"), Reason: "Deposit"}, t0)
	require.NoError(t, err)
	assert.True(t, first.Balance.Equal(dec("10000")))

	tradeID := int64(4)
	second, err := repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("-125.25"), Reason: "Trade P&L: EURUSD long", TradeID: &tradeID}, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, second.Balance.Equal(dec("9874.75")))
	assert.True(t, second.ChangeAmount.Equal(dec("-125.25")))
	require.NotNil(t, second.TradeID)
	assert.Equal(t, int64(4), *second.TradeID)

	rows, err := repo.List(ctx, ws, "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
}

func TestBalancePartitionedByAccount(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Stocks()
	repo := NewBalanceRepository(newStore(t))

	_, err := repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("5000"), Reason: "Deposit", Account: "USD"}, t0)
	require.NoError(t, err)
	_, err = repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("2000"), Reason: "Deposit", Account: "CAD"}, t0.Add(time.Second))
	require.NoError(t, err)
	usd, err := repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("100"), Reason: "Trade P&L: AAPL long", Account: "USD"}, t0.Add(2*time.Second))
	require.NoError(t, err)

	assert.True(t, usd.Balance.Equal(dec("5100")))
	assert.Equal(t, "USD", usd.Account)

	cad, err := repo.Latest(ctx, ws, "CAD")
	require.NoError(t, err)
	require.NotNil(t, cad)
	assert.True(t, cad.Balance.Equal(dec("2000")))

	usdRows, err := repo.List(ctx, ws, "USD", 10)
	require.NoError(t, err)
	assert.Len(t, usdRows, 2)
}

func TestBalanceAppendConcurrent(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	repo := NewBalanceRepository(newStore(t))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Append(ctx, ws, entity.BalanceChange{Delta: dec("10"), Reason: "Deposit"}, t0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := repo.List(ctx, ws, "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	highest := decimal.Zero
	for _, r := range rows {
		if r.Balance.GreaterThan(highest) {
			highest = r.Balance
		}
	}
	assert.True(t, highest.Equal(dec("100")))
}

func TestPlanSaveUpdatesSingleRow(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	store := newStore(t)
	repo := NewPlanRepository(store)

	plan, err := repo.Load(ctx, ws)
	require.NoError(t, err)
	assert.Nil(t, plan)

	first, err := repo.Save(ctx, ws, "Only trade forecasted pairs.", t0)
	require.NoError(t, err)
	second, err := repo.Save(ctx, ws, "Only trade forecasted pairs. No Red Zone.", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	loaded, err := repo.Load(ctx, ws)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Only trade forecasted pairs. No Red Zone.", loaded.Content)
	assert.True(t, loaded.UpdatedAt.Equal(t0.Add(time.Hour)))

	rows, err := store.Select(ctx, Query{Table: ws.Tables.Plan})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMissedTrades(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Stocks()
	repo := NewMissedTradeRepository(newStore(t))

	_, err := repo.Insert(ctx, ws, entity.MissedTrade{Instrument: "tsla", Direction: "long", Pattern: "Breakout", PotentialReturn: dec("7.5"), CreatedAt: t0})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, ws, entity.MissedTrade{Instrument: "nvda", Direction: "short", PotentialReturn: dec("-1.25"), CreatedAt: t0.Add(time.Hour)})
	require.NoError(t, err)

	list, err := repo.List(ctx, ws)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "NVDA", list[0].Instrument)
	assert.Empty(t, list[0].Pattern)
	assert.True(t, list[1].PotentialReturn.Equal(dec("7.5")))

	_, err = repo.List(ctx, workspace.Options())
	assert.Error(t, err)
}

func TestChecklistLogsAndAttempts(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	repo := NewChecklistRepository(newStore(t))

	snap := entity.ChecklistSnapshot{Responses: map[string]string{"topSetup": "yes"}, Zone: "Green", RecordedAt: t0, AllYes: true}
	_, err := repo.InsertLog(ctx, ws, entity.ChecklistLog{TradeID: 7, Snapshot: snap, Zone: "Green", Status: entity.ChecklistStatusPassed, CreatedAt: t0})
	require.NoError(t, err)

	logs, err := repo.LogsForTrades(ctx, ws, []int64{7, 8})
	require.NoError(t, err)
	require.Contains(t, logs, int64(7))
	assert.Equal(t, "forex", logs[7].Workspace)
	assert.Equal(t, "yes", logs[7].Snapshot.Responses["topSetup"])
	assert.True(t, logs[7].Snapshot.RecordedAt.Equal(t0))
	assert.NotContains(t, logs, int64(8))

	empty, err := repo.LogsForTrades(ctx, ws, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.InsertAttempt(ctx, ws, entity.ChecklistAttempt{
		Snapshot: snap, Zone: "Red", Status: entity.ChecklistStatusFailed,
		FailureReason: "Red Zone", FailedItems: []string{"ownAnalysis", "riskReward"}, CreatedAt: t0,
	})
	require.NoError(t, err)
	_, err = repo.InsertAttempt(ctx, ws, entity.ChecklistAttempt{Snapshot: snap, Zone: "Green", Status: entity.ChecklistStatusPassed, CreatedAt: t0.Add(time.Minute)})
	require.NoError(t, err)

	attempts, err := repo.RecentAttempts(ctx, ws, 200)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, entity.ChecklistStatusPassed, attempts[0].Status)
	assert.Equal(t, []string{"ownAnalysis", "riskReward"}, attempts[1].FailedItems)

	limited, err := repo.RecentAttempts(ctx, ws, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	c := cache.NewMemory(time.Minute)
	store := NewCachedStore(newStore(t), c, time.Minute, logger.NewNop())
	trades := NewTradeRepository(store)
	balance := NewBalanceRepository(store)

	_, err := trades.Insert(ctx, ws, forexTrade("EURUSD"))
	require.NoError(t, err)

	first, err := trades.List(ctx, ws, "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// served from cache with the same decoded values
	cached, err := trades.List(ctx, ws, "")
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, cached[0].ID)
	assert.True(t, cached[0].EntryDate.Equal(first[0].EntryDate))
	firstFields := first[0].Fields.(entity.ForexTradeFields)
	cachedFields := cached[0].Fields.(entity.ForexTradeFields)
	assert.Equal(t, firstFields.SetupFields, cachedFields.SetupFields)
	assert.True(t, firstFields.StopSize.Equal(cachedFields.StopSize))

	_, err = trades.Insert(ctx, ws, forexTrade("GBPUSD"))
	require.NoError(t, err)
	after, err := trades.List(ctx, ws, "")
	require.NoError(t, err)
	assert.Len(t, after, 2)

	_, err = balance.Append(ctx, ws, entity.BalanceChange{Delta: dec("100"), Reason: "Deposit"}, t0)
	require.NoError(t, err)
	latest, err := balance.Latest(ctx, ws, "")
	require.NoError(t, err)
	_, err = balance.Append(ctx, ws, entity.BalanceChange{Delta: dec("50"), Reason: "Deposit"}, t0.Add(time.Second))
	require.NoError(t, err)
	again, err := balance.Latest(ctx, ws, "")
	require.NoError(t, err)
	assert.True(t, latest.Balance.Equal(dec("100")))
	assert.True(t, again.Balance.Equal(dec("150")))
}

// pausingStore holds the first armed Select on table after it has read the
// database, until release is closed.
type pausingStore struct {
	Store
	table   string
	armed   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func (p *pausingStore) Select(ctx context.Context, q Query) ([]Row, error) {
	rows, err := p.Store.Select(ctx, q)
	if q.Table == p.table && p.armed.CompareAndSwap(true, false) {
		close(p.read)
		<-p.release
	}
	return rows, err
}

func TestCachedStoreDropsFillRacingWrite(t *testing.T) {
	ctx := context.Background()
	ws := workspace.Forex()
	inner := &pausingStore{
		Store:   newStore(t),
		table:   ws.Tables.Balance,
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	balance := NewBalanceRepository(NewCachedStore(inner, cache.NewMemory(time.Minute), time.Minute, logger.NewNop()))

	_, err := balance.Append(ctx, ws, entity.BalanceChange{Delta: dec("100"), Reason: "Deposit"}, t0)
	require.NoError(t, err)

	inner.armed.Store(true)
	type result struct {
		entry *entity.BalanceEntry
		err   error
	}
	done := make(chan result, 1)
	go func() {
		entry, err := balance.Latest(ctx, ws, "")
		done <- result{entry, err}
	}()

	<-inner.read
	_, err = balance.Append(ctx, ws, entity.BalanceChange{Delta: dec("50"), Reason: "Deposit"}, t0.Add(time.Second))
	require.NoError(t, err)
	close(inner.release)

	slow := <-done
	require.NoError(t, slow.err)
	assert.True(t, slow.entry.Balance.Equal(dec("100")))

	latest, err := balance.Latest(ctx, ws, "")
	require.NoError(t, err)
	assert.True(t, latest.Balance.Equal(dec("150")), "got %s", latest.Balance)
}

func TestQueryKeyIsStable(t *testing.T) {
	a := Query{Table: "trades", Filters: []Filter{{"status", "open"}, {"account", "USD"}}, Limit: 1}
	b := Query{Table: "trades", Filters: []Filter{{"account", "USD"}, {"status", "open"}}, Limit: 1}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Query{Table: "trades"}.Key())
}

func TestOperationError(t *testing.T) {
	ctx := context.Background()
	_, err := newStore(t).Select(ctx, Query{Table: "no_such_table"})
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Contains(t, err.Error(), "operation failed: select no_such_table")
}
