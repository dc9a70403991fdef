package repository

import (
	"context"
	"encoding/json"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ChecklistRepository defines data access for checklist logs and attempts.
type ChecklistRepository interface {
	InsertLog(ctx context.Context, ws workspace.Config, log entity.ChecklistLog) (*entity.ChecklistLog, error)
	// LogsForTrades returns the newest log per trade id.
	LogsForTrades(ctx context.Context, ws workspace.Config, tradeIDs []int64) (map[int64]entity.ChecklistLog, error)
	InsertAttempt(ctx context.Context, ws workspace.Config, attempt entity.ChecklistAttempt) (*entity.ChecklistAttempt, error)
	// RecentAttempts returns the newest attempts of the workspace.
	RecentAttempts(ctx context.Context, ws workspace.Config, limit int) ([]entity.ChecklistAttempt, error)
}

// NewChecklistRepository creates a checklist repository on top of store.
func NewChecklistRepository(store Store) ChecklistRepository {
	return &checklistRepository{store: store}
}

type checklistRepository struct {
	store Store
}

func (r *checklistRepository) InsertLog(ctx context.Context, ws workspace.Config, log entity.ChecklistLog) (*entity.ChecklistLog, error) {
	c := ws.ChecklistLogColumns
	if err := mustColumn(ws.Tables.ChecklistLogs, c.ID, "checklist logs"); err != nil {
		return nil, err
	}
	answers, err := json.Marshal(log.Snapshot)
	if err != nil {
		return nil, err
	}

	row := Row{}
	set(row, c.TradeID, log.TradeID)
	set(row, c.Answers, datatypes.JSON(answers))
	set(row, c.Zone, nullIfEmpty(log.Zone))
	set(row, c.Status, string(log.Status))
	set(row, c.Workspace, ws.ChecklistWorkspace)
	if !log.CreatedAt.IsZero() {
		set(row, c.CreatedAt, log.CreatedAt)
	}

	stored, err := r.store.Insert(ctx, ws.Tables.ChecklistLogs, c.ID, row)
	if err != nil {
		return nil, err
	}
	out := decodeChecklistLog(ws, stored)
	return &out, nil
}

func (r *checklistRepository) LogsForTrades(ctx context.Context, ws workspace.Config, tradeIDs []int64) (map[int64]entity.ChecklistLog, error) {
	c := ws.ChecklistLogColumns
	out := make(map[int64]entity.ChecklistLog)
	if ws.Tables.ChecklistLogs == "" || c.TradeID == "" || len(tradeIDs) == 0 {
		return out, nil
	}

	ids := make([]interface{}, len(tradeIDs))
	for i, id := range tradeIDs {
		ids[i] = id
	}
	q := Query{
		Table: ws.Tables.ChecklistLogs,
		In:    []InFilter{{Column: c.TradeID, Values: ids}},
		Order: []Order{{Column: c.CreatedAt, Desc: true}, {Column: c.ID, Desc: true}},
	}
	q.Filters = filter(c.Workspace, ws.ChecklistWorkspace)

	rows, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		l := decodeChecklistLog(ws, row)
		if _, seen := out[l.TradeID]; !seen {
			out[l.TradeID] = l
		}
	}
	return out, nil
}

func (r *checklistRepository) InsertAttempt(ctx context.Context, ws workspace.Config, attempt entity.ChecklistAttempt) (*entity.ChecklistAttempt, error) {
	c := ws.ChecklistAttemptColumns
	if err := mustColumn(ws.Tables.ChecklistAttempts, c.ID, "checklist attempts"); err != nil {
		return nil, err
	}
	answers, err := json.Marshal(attempt.Snapshot)
	if err != nil {
		return nil, err
	}

	row := Row{}
	set(row, c.Answers, datatypes.JSON(answers))
	set(row, c.Zone, nullIfEmpty(attempt.Zone))
	set(row, c.Status, string(attempt.Status))
	set(row, c.Workspace, ws.ChecklistWorkspace)
	set(row, c.FailureReason, nullIfEmpty(attempt.FailureReason))
	if len(attempt.FailedItems) > 0 {
		set(row, c.FailedItems, pq.StringArray(attempt.FailedItems))
	}
	if !attempt.CreatedAt.IsZero() {
		set(row, c.CreatedAt, attempt.CreatedAt)
	}

	stored, err := r.store.Insert(ctx, ws.Tables.ChecklistAttempts, c.ID, row)
	if err != nil {
		return nil, err
	}
	out := decodeChecklistAttempt(ws, stored)
	return &out, nil
}

func (r *checklistRepository) RecentAttempts(ctx context.Context, ws workspace.Config, limit int) ([]entity.ChecklistAttempt, error) {
	c := ws.ChecklistAttemptColumns
	if err := mustColumn(ws.Tables.ChecklistAttempts, c.ID, "checklist attempts"); err != nil {
		return nil, err
	}
	rows, err := r.store.Select(ctx, Query{
		Table:   ws.Tables.ChecklistAttempts,
		Filters: filter(c.Workspace, ws.ChecklistWorkspace),
		Order:   []Order{{Column: c.CreatedAt, Desc: true}, {Column: c.ID, Desc: true}},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.ChecklistAttempt, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeChecklistAttempt(ws, row))
	}
	return out, nil
}

func decodeChecklistLog(ws workspace.Config, r Row) entity.ChecklistLog {
	c := ws.ChecklistLogColumns
	l := entity.ChecklistLog{
		ID:        rowInt64(r, c.ID),
		TradeID:   rowInt64(r, c.TradeID),
		Zone:      rowString(r, c.Zone),
		Status:    entity.ChecklistStatus(rowString(r, c.Status)),
		Workspace: rowString(r, c.Workspace),
	}
	_ = rowJSON(r, c.Answers, &l.Snapshot)
	if at, ok := rowTime(r, c.CreatedAt); ok {
		l.CreatedAt = at
	}
	return l
}

func decodeChecklistAttempt(ws workspace.Config, r Row) entity.ChecklistAttempt {
	c := ws.ChecklistAttemptColumns
	a := entity.ChecklistAttempt{
		ID:            rowInt64(r, c.ID),
		Zone:          rowString(r, c.Zone),
		Status:        entity.ChecklistStatus(rowString(r, c.Status)),
		Workspace:     rowString(r, c.Workspace),
		FailureReason: rowString(r, c.FailureReason),
		FailedItems:   rowStrings(r, c.FailedItems),
	}
	_ = rowJSON(r, c.Answers, &a.Snapshot)
	if at, ok := rowTime(r, c.CreatedAt); ok {
		a.CreatedAt = at
	}
	return a
}
