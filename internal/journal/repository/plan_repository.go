package repository

import (
	"context"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"
)

// PlanRepository defines data access for the trading plan. A workspace keeps
// a single plan row.
type PlanRepository interface {
	// Load returns the most recently updated plan, or nil when none exists.
	Load(ctx context.Context, ws workspace.Config) (*entity.TradingPlan, error)
	// Save updates the existing plan row or inserts the first one.
	Save(ctx context.Context, ws workspace.Config, content string, at time.Time) (*entity.TradingPlan, error)
}

// NewPlanRepository creates a trading plan repository on top of store.
func NewPlanRepository(store Store) PlanRepository {
	return &planRepository{store: store}
}

type planRepository struct {
	store Store
}

func (r *planRepository) Load(ctx context.Context, ws workspace.Config) (*entity.TradingPlan, error) {
	if err := mustColumn(ws.Tables.Plan, ws.PlanColumns.ID, "trading plan"); err != nil {
		return nil, err
	}
	return loadPlan(ctx, r.store, ws)
}

func (r *planRepository) Save(ctx context.Context, ws workspace.Config, content string, at time.Time) (*entity.TradingPlan, error) {
	c := ws.PlanColumns
	if err := mustColumn(ws.Tables.Plan, c.ID, "trading plan"); err != nil {
		return nil, err
	}
	var out *entity.TradingPlan
	err := r.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Lock(ctx, ws.Tables.Plan); err != nil {
			return err
		}
		existing, err := loadPlan(ctx, tx, ws)
		if err != nil {
			return err
		}

		row := Row{}
		set(row, c.Content, content)
		set(row, c.UpdatedAt, at)

		if existing != nil {
			if _, err := tx.Update(ctx, ws.Tables.Plan, row, filter(c.ID, existing.ID)...); err != nil {
				return err
			}
			out, err = loadPlan(ctx, tx, ws)
			return err
		}

		stored, err := tx.Insert(ctx, ws.Tables.Plan, c.ID, row)
		if err != nil {
			return err
		}
		p := decodePlan(ws, stored)
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadPlan(ctx context.Context, s Store, ws workspace.Config) (*entity.TradingPlan, error) {
	c := ws.PlanColumns
	rows, err := s.Select(ctx, Query{
		Table: ws.Tables.Plan,
		Order: []Order{{Column: c.UpdatedAt, Desc: true}, {Column: c.ID, Desc: true}},
		Limit: 1,
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	p := decodePlan(ws, rows[0])
	return &p, nil
}

func decodePlan(ws workspace.Config, r Row) entity.TradingPlan {
	c := ws.PlanColumns
	p := entity.TradingPlan{
		ID:      rowInt64(r, c.ID),
		Content: rowString(r, c.Content),
	}
	if at, ok := rowTime(r, c.UpdatedAt); ok {
		p.UpdatedAt = at
	}
	return p
}
