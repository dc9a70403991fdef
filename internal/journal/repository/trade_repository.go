package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/workspace"
)

// TradeRepository defines data access for trades.
type TradeRepository interface {
	// List returns trades newest entry first, optionally restricted to status.
	List(ctx context.Context, ws workspace.Config, status entity.TradeStatus) ([]entity.Trade, error)
	FindByID(ctx context.Context, ws workspace.Config, id int64) (*entity.Trade, error)
	// Insert stores a new trade. The stored status is always open.
	Insert(ctx context.Context, ws workspace.Config, trade entity.Trade) (*entity.Trade, error)
	// Close marks an open trade closed. Empty notes keep the notes already stored.
	Close(ctx context.Context, ws workspace.Config, id int64, close entity.TradeClose, at time.Time) (*entity.Trade, error)
}

// NewTradeRepository creates a trade repository on top of store.
func NewTradeRepository(store Store) TradeRepository {
	return &tradeRepository{store: store}
}

type tradeRepository struct {
	store Store
}

func (r *tradeRepository) List(ctx context.Context, ws workspace.Config, status entity.TradeStatus) ([]entity.Trade, error) {
	c := ws.TradeColumns
	q := Query{
		Table: ws.Tables.Trades,
		Order: []Order{{Column: c.EntryDate, Desc: true}, {Column: c.ID, Desc: true}},
	}
	if status != "" {
		q.Filters = filter(c.Status, string(status))
	}
	rows, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	trades := make([]entity.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, decodeTrade(ws, row))
	}
	return trades, nil
}

func (r *tradeRepository) FindByID(ctx context.Context, ws workspace.Config, id int64) (*entity.Trade, error) {
	rows, err := r.store.Select(ctx, Query{
		Table:   ws.Tables.Trades,
		Filters: filter(ws.TradeColumns.ID, id),
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	t := decodeTrade(ws, rows[0])
	return &t, nil
}

func (r *tradeRepository) Insert(ctx context.Context, ws workspace.Config, trade entity.Trade) (*entity.Trade, error) {
	payload, err := tradePayload(ws, trade)
	if err != nil {
		return nil, err
	}
	row, err := r.store.Insert(ctx, ws.Tables.Trades, ws.TradeColumns.ID, payload)
	if err != nil {
		return nil, err
	}
	t := decodeTrade(ws, row)
	return &t, nil
}

func (r *tradeRepository) Close(ctx context.Context, ws workspace.Config, id int64, close entity.TradeClose, at time.Time) (*entity.Trade, error) {
	current, err := r.FindByID(ctx, ws, id)
	if err != nil {
		return nil, err
	}
	c := ws.TradeColumns
	notes := close.Notes
	if notes == "" {
		notes = current.Notes
	}

	upd := Row{}
	set(upd, c.ExitDate, at)
	set(upd, c.ExitURL, nullIfEmpty(close.ExitURL))
	set(upd, c.PnL, close.PnL)
	set(upd, c.Notes, nullIfEmpty(notes))
	set(upd, c.Status, string(entity.TradeStatusClosed))

	filters := append(filter(c.ID, id), filter(c.Status, string(entity.TradeStatusOpen))...)
	n, err := r.store.Update(ctx, ws.Tables.Trades, upd, filters...)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, ws, id)
}

// tradePayload maps a trade onto the physical columns of ws. Columns the
// workspace does not have are never written.
func tradePayload(ws workspace.Config, t entity.Trade) (Row, error) {
	if t.Fields == nil {
		return nil, fmt.Errorf("trade fields are required")
	}
	if t.Fields.Kind() != ws.Kind {
		return nil, fmt.Errorf("%s trade fields do not belong to the %s workspace", t.Fields.Kind(), ws.Key)
	}

	c := ws.TradeColumns
	instrument := strings.TrimSpace(t.Instrument)
	if ws.UppercaseInstrument {
		instrument = strings.ToUpper(instrument)
	}

	row := Row{}
	set(row, c.Instrument, instrument)
	set(row, c.Direction, t.Direction)
	set(row, c.EntryURL, nullIfEmpty(t.EntryURL))
	set(row, c.Notes, nullIfEmpty(t.Notes))
	set(row, c.Status, string(entity.TradeStatusOpen))
	if !t.EntryDate.IsZero() {
		set(row, c.EntryDate, t.EntryDate)
	}

	switch f := t.Fields.(type) {
	case entity.StockTradeFields:
		setSetup(row, c, f.SetupFields)
		set(row, c.StopSize, f.StopSize)
		set(row, c.RiskAmount, f.RiskAmount)
		set(row, c.Account, nullIfEmpty(f.Account))
	case entity.ForexTradeFields:
		setSetup(row, c, f.SetupFields)
		set(row, c.StopSize, f.StopSize)
		set(row, c.RiskAmount, f.RiskAmount)
	case entity.OptionTradeFields:
		set(row, c.OptionType, f.OptionType)
		set(row, c.StrikePrice, f.StrikePrice)
		if f.ExpiryDate != nil {
			set(row, c.ExpiryDate, *f.ExpiryDate)
		}
		set(row, c.Contracts, f.Contracts)
		set(row, c.Premium, f.Premium)
	default:
		return nil, fmt.Errorf("unsupported trade fields %T", f)
	}
	return row, nil
}

func setSetup(row Row, c workspace.TradeColumns, s entity.SetupFields) {
	set(row, c.EntryType, nullIfEmpty(s.EntryType))
	set(row, c.Rule, nullIfEmpty(s.Rule))
	set(row, c.Zone, nullIfEmpty(s.Zone))
	set(row, c.Pattern, nullIfEmpty(s.Pattern))
}

func decodeTrade(ws workspace.Config, r Row) entity.Trade {
	c := ws.TradeColumns
	t := entity.Trade{
		ID:         rowInt64(r, c.ID),
		Workspace:  ws.Key,
		Instrument: rowString(r, c.Instrument),
		Direction:  rowString(r, c.Direction),
		EntryURL:   rowString(r, c.EntryURL),
		Notes:      rowString(r, c.Notes),
		Status:     entity.TradeStatus(rowString(r, c.Status)),
		PnL:        rowDecimalPtr(r, c.PnL),
		ExitDate:   rowTimePtr(r, c.ExitDate),
		ExitURL:    rowString(r, c.ExitURL),
	}
	if entry, ok := rowTime(r, c.EntryDate); ok {
		t.EntryDate = entry
	}

	setup := entity.SetupFields{
		EntryType: rowString(r, c.EntryType),
		Rule:      rowString(r, c.Rule),
		Zone:      rowString(r, c.Zone),
		Pattern:   rowString(r, c.Pattern),
	}
	switch ws.Kind {
	case entity.WorkspaceKindStocks:
		t.Fields = entity.StockTradeFields{
			SetupFields: setup,
			StopSize:    rowDecimalOrZero(r, c.StopSize),
			RiskAmount:  rowDecimalOrZero(r, c.RiskAmount),
			Account:     rowString(r, c.Account),
		}
	case entity.WorkspaceKindForex:
		t.Fields = entity.ForexTradeFields{
			SetupFields: setup,
			StopSize:    rowDecimalOrZero(r, c.StopSize),
			RiskAmount:  rowDecimalOrZero(r, c.RiskAmount),
		}
	case entity.WorkspaceKindOptions:
		t.Fields = entity.OptionTradeFields{
			OptionType:  rowString(r, c.OptionType),
			StrikePrice: rowDecimalOrZero(r, c.StrikePrice),
			ExpiryDate:  rowTimePtr(r, c.ExpiryDate),
			Contracts:   int(rowInt64(r, c.Contracts)),
			Premium:     rowDecimalOrZero(r, c.Premium),
		}
	}
	return t
}
