// Package journaltest provides SQLite-backed fixtures for journal tests.
package journaltest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang-trade-journal/internal/journal/workspace"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a file-backed SQLite database in a temp dir and creates every
// table described by the given workspaces.
func NewDB(t *testing.T, configs ...workspace.Config) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, c := range configs {
		for _, stmt := range Schema(c) {
			require.NoError(t, db.Exec(stmt).Error, stmt)
		}
	}
	return db
}

type column struct {
	name string
	typ  string
}

func createTable(table, id string, cols ...column) string {
	defs := []string{fmt.Sprintf("%q INTEGER PRIMARY KEY AUTOINCREMENT", id)}
	for _, c := range cols {
		if c.name == "" {
			continue
		}
		defs = append(defs, fmt.Sprintf("%q %s", c.name, c.typ))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", table, strings.Join(defs, ", "))
}

// Schema returns the SQLite DDL for every table of c.
func Schema(c workspace.Config) []string {
	const (
		text     = "TEXT"
		real     = "REAL"
		integer  = "INTEGER"
		datetime = "DATETIME"
		now      = "DATETIME DEFAULT CURRENT_TIMESTAMP"
	)
	tc := c.TradeColumns
	stmts := []string{
		createTable(c.Tables.Trades, tc.ID,
			column{tc.Instrument, text + " NOT NULL"},
			column{tc.Direction, text},
			column{tc.StopSize, real},
			column{tc.RiskAmount, real},
			column{tc.EntryURL, text},
			column{tc.EntryType, text},
			column{tc.Rule, text},
			column{tc.Zone, text},
			column{tc.Pattern, text},
			column{tc.Notes, text},
			column{tc.Status, text + " NOT NULL DEFAULT 'open'"},
			column{tc.PnL, real},
			column{tc.EntryDate, now},
			column{tc.ExitDate, datetime},
			column{tc.ExitURL, text},
			column{tc.Account, text},
			column{tc.OptionType, text},
			column{tc.StrikePrice, real},
			column{tc.ExpiryDate, datetime},
			column{tc.Contracts, integer},
			column{tc.Premium, real},
		),
	}

	bc := c.BalanceColumns
	stmts = append(stmts, createTable(c.Tables.Balance, bc.ID,
		column{bc.Balance, real + " NOT NULL"},
		column{bc.ChangeAmount, real},
		column{bc.Reason, text},
		column{bc.TradeID, integer},
		column{bc.CreatedAt, now},
		column{bc.Currency, text},
	))

	if c.Tables.Missed != "" {
		mc := c.MissedColumns
		stmts = append(stmts, createTable(c.Tables.Missed, mc.ID,
			column{mc.Instrument, text},
			column{mc.Direction, text},
			column{mc.BeforeURL, text},
			column{mc.AfterURL, text},
			column{mc.Pattern, text},
			column{mc.PotentialReturn, real},
			column{mc.CreatedAt, now},
		))
	}
	if c.Tables.Plan != "" {
		pc := c.PlanColumns
		stmts = append(stmts, createTable(c.Tables.Plan, pc.ID,
			column{pc.Content, text},
			column{pc.UpdatedAt, now},
		))
	}
	if c.Tables.ChecklistLogs != "" {
		lc := c.ChecklistLogColumns
		stmts = append(stmts, createTable(c.Tables.ChecklistLogs, lc.ID,
			column{lc.TradeID, integer},
			column{lc.Answers, text},
			column{lc.Zone, text},
			column{lc.Status, text},
			column{lc.Workspace, text},
			column{lc.CreatedAt, now},
		))
	}
	if c.Tables.ChecklistAttempts != "" {
		ac := c.ChecklistAttemptColumns
		stmts = append(stmts, createTable(c.Tables.ChecklistAttempts, ac.ID,
			column{ac.Answers, text},
			column{ac.Zone, text},
			column{ac.Status, text},
			column{ac.Workspace, text},
			column{ac.FailureReason, text},
			column{ac.FailedItems, text},
			column{ac.CreatedAt, now},
		))
	}
	return stmts
}
