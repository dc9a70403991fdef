package workspace

import (
	"testing"

	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	r := Default()

	tests := []struct {
		key        string
		kind       entity.WorkspaceKind
		instrument string
		account    string
		missed     int
		multi      bool
	}{
		{KeyStocks, entity.WorkspaceKindStocks, "ticker", "account_currency", 3, true},
		{KeyForex, entity.WorkspaceKindForex, "pair", "", 5, false},
		{KeyOptions, entity.WorkspaceKindOptions, "ticker", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := r.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.instrument, c.TradeColumns.Instrument)
			assert.Equal(t, tt.account, c.TradeColumns.Account)
			assert.Equal(t, tt.missed, c.MinMissedTrades)
			assert.Equal(t, tt.multi, c.MultiAccount())
			assert.Equal(t, 5, c.MinClosedTrades)
			assert.True(t, c.RiskFraction.Equal(decimal.RequireFromString("0.005")))
			assert.True(t, c.UppercaseInstrument)
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := Default().Get("crypto")
	assert.ErrorIs(t, err, ErrUnknownWorkspace)
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := Default()

	c, err := r.Get(KeyStocks)
	require.NoError(t, err)
	c.FormDefaults["account"] = "CAD"
	c.Vocabulary.Accounts[0].Value = "EUR"
	c.Tables.Trades = "hacked"

	again, err := r.Get(KeyStocks)
	require.NoError(t, err)
	assert.Equal(t, "USD", again.FormDefaults["account"])
	assert.Equal(t, "CAD", again.Vocabulary.Accounts[0].Value)
	assert.Equal(t, "stock_trades", again.Tables.Trades)
}

func TestOptionsWorkspaceDisablesRiskAndMissed(t *testing.T) {
	c := Options()
	assert.False(t, c.RiskChecked())
	assert.False(t, c.MissedEnabled())
	assert.False(t, c.Features.Analytics)
	assert.True(t, c.PlanEnabled())
	assert.True(t, c.ChecklistEnabled())
	assert.Empty(t, c.TradeColumns.StopSize)
}

func TestBuiltin(t *testing.T) {
	r, err := Builtin(KeyForex)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyForex}, r.Keys())

	_, err = Builtin("futures")
	assert.ErrorIs(t, err, ErrUnknownWorkspace)

	all, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyStocks, KeyForex, KeyOptions}, all.Keys())
}

func TestRegistryTables(t *testing.T) {
	tables := NewRegistry(Options()).Tables()
	assert.Equal(t, []string{
		"options_balance_history",
		"options_checklist_attempts",
		"options_checklist_logs",
		"options_trades",
		"options_trading_plan",
	}, tables)
}
