package repository

import (
	"context"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"
)

// BalanceRepository defines data access for the balance ledger.
type BalanceRepository interface {
	// List returns ledger rows newest first. account is ignored unless the
	// workspace partitions balances by account. A limit of 0 returns every row.
	List(ctx context.Context, ws workspace.Config, account string, limit int) ([]entity.BalanceEntry, error)
	// Latest returns the newest row of the partition, or nil when it is empty.
	Latest(ctx context.Context, ws workspace.Config, account string) (*entity.BalanceEntry, error)
	// Append adds change to the latest balance of its partition and stores
	// the result as a new row. Concurrent appends to one partition are serialized.
	Append(ctx context.Context, ws workspace.Config, change entity.BalanceChange, at time.Time) (*entity.BalanceEntry, error)
}

// NewBalanceRepository creates a balance repository on top of store.
func NewBalanceRepository(store Store) BalanceRepository {
	return &balanceRepository{store: store}
}

type balanceRepository struct {
	store Store
}

func (r *balanceRepository) List(ctx context.Context, ws workspace.Config, account string, limit int) ([]entity.BalanceEntry, error) {
	return listBalance(ctx, r.store, ws, account, limit)
}

func (r *balanceRepository) Latest(ctx context.Context, ws workspace.Config, account string) (*entity.BalanceEntry, error) {
	return latestBalance(ctx, r.store, ws, account)
}

func (r *balanceRepository) Append(ctx context.Context, ws workspace.Config, change entity.BalanceChange, at time.Time) (*entity.BalanceEntry, error) {
	var out *entity.BalanceEntry
	account := partition(ws, change.Account)
	err := r.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Lock(ctx, ws.Tables.Balance+":"+account); err != nil {
			return err
		}
		latest, err := latestBalance(ctx, tx, ws, account)
		if err != nil {
			return err
		}
		current := change.Delta
		if latest != nil {
			current = latest.Balance.Add(change.Delta)
		}

		c := ws.BalanceColumns
		row := Row{}
		set(row, c.Balance, current)
		set(row, c.ChangeAmount, change.Delta)
		set(row, c.Reason, change.Reason)
		if change.TradeID != nil {
			set(row, c.TradeID, *change.TradeID)
		}
		set(row, c.CreatedAt, at)
		set(row, c.Currency, nullIfEmpty(account))

		stored, err := tx.Insert(ctx, ws.Tables.Balance, c.ID, row)
		if err != nil {
			return err
		}
		e := decodeBalance(ws, stored)
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// partition returns the account key used to partition balances, or "" when
// the workspace keeps a single balance.
func partition(ws workspace.Config, account string) string {
	if !ws.MultiAccount() {
		return ""
	}
	return account
}

func listBalance(ctx context.Context, s Store, ws workspace.Config, account string, limit int) ([]entity.BalanceEntry, error) {
	c := ws.BalanceColumns
	q := Query{
		Table: ws.Tables.Balance,
		Order: []Order{{Column: c.CreatedAt, Desc: true}, {Column: c.ID, Desc: true}},
		Limit: limit,
	}
	if acc := partition(ws, account); acc != "" {
		q.Filters = filter(c.Currency, acc)
	}
	rows, err := s.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	entries := make([]entity.BalanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, decodeBalance(ws, row))
	}
	return entries, nil
}

func latestBalance(ctx context.Context, s Store, ws workspace.Config, account string) (*entity.BalanceEntry, error) {
	entries, err := listBalance(ctx, s, ws, account, 1)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

func decodeBalance(ws workspace.Config, r Row) entity.BalanceEntry {
	c := ws.BalanceColumns
	e := entity.BalanceEntry{
		ID:           rowInt64(r, c.ID),
		Balance:      rowDecimalOrZero(r, c.Balance),
		ChangeAmount: rowDecimalOrZero(r, c.ChangeAmount),
		Reason:       rowString(r, c.Reason),
		TradeID:      rowInt64Ptr(r, c.TradeID),
		Account:      rowString(r, c.Currency),
	}
	if at, ok := rowTime(r, c.CreatedAt); ok {
		e.CreatedAt = at
	}
	return e
}
