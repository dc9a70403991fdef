package repository

import (
	"context"
	"strings"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"
)

// MissedTradeRepository defines data access for missed opportunities.
type MissedTradeRepository interface {
	List(ctx context.Context, ws workspace.Config) ([]entity.MissedTrade, error)
	Insert(ctx context.Context, ws workspace.Config, missed entity.MissedTrade) (*entity.MissedTrade, error)
}

// NewMissedTradeRepository creates a missed trade repository on top of store.
func NewMissedTradeRepository(store Store) MissedTradeRepository {
	return &missedTradeRepository{store: store}
}

type missedTradeRepository struct {
	store Store
}

func (r *missedTradeRepository) List(ctx context.Context, ws workspace.Config) ([]entity.MissedTrade, error) {
	c := ws.MissedColumns
	if err := mustColumn(ws.Tables.Missed, c.ID, "missed trades"); err != nil {
		return nil, err
	}
	rows, err := r.store.Select(ctx, Query{
		Table: ws.Tables.Missed,
		Order: []Order{{Column: c.CreatedAt, Desc: true}, {Column: c.ID, Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.MissedTrade, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeMissed(ws, row))
	}
	return out, nil
}

func (r *missedTradeRepository) Insert(ctx context.Context, ws workspace.Config, m entity.MissedTrade) (*entity.MissedTrade, error) {
	c := ws.MissedColumns
	if err := mustColumn(ws.Tables.Missed, c.ID, "missed trades"); err != nil {
		return nil, err
	}
	instrument := strings.TrimSpace(m.Instrument)
	if ws.UppercaseInstrument {
		instrument = strings.ToUpper(instrument)
	}

	row := Row{}
	set(row, c.Instrument, instrument)
	set(row, c.Direction, m.Direction)
	set(row, c.BeforeURL, nullIfEmpty(m.BeforeURL))
	set(row, c.AfterURL, nullIfEmpty(m.AfterURL))
	set(row, c.Pattern, nullIfEmpty(m.Pattern))
	set(row, c.PotentialReturn, m.PotentialReturn)
	if !m.CreatedAt.IsZero() {
		set(row, c.CreatedAt, m.CreatedAt)
	}

	stored, err := r.store.Insert(ctx, ws.Tables.Missed, c.ID, row)
	if err != nil {
		return nil, err
	}
	out := decodeMissed(ws, stored)
	return &out, nil
}

func decodeMissed(ws workspace.Config, r Row) entity.MissedTrade {
	c := ws.MissedColumns
	m := entity.MissedTrade{
		ID:              rowInt64(r, c.ID),
		Instrument:      rowString(r, c.Instrument),
		Direction:       rowString(r, c.Direction),
		BeforeURL:       rowString(r, c.BeforeURL),
		AfterURL:        rowString(r, c.AfterURL),
		Pattern:         rowString(r, c.Pattern),
		PotentialReturn: rowDecimalOrZero(r, c.PotentialReturn),
	}
	if at, ok := rowTime(r, c.CreatedAt); ok {
		m.CreatedAt = at
	}
	return m
}
