// Package analytics aggregates closed trades, missed trades and checklist
// attempts into performance summaries. Every function is pure.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// Dimension is an attribute trades are grouped by.
type Dimension string

const (
	DimensionPattern    Dimension = "pattern"
	DimensionZone       Dimension = "zone"
	DimensionEntryType  Dimension = "entryType"
	DimensionRule       Dimension = "rule"
	DimensionInstrument Dimension = "instrument"
	DimensionDay        Dimension = "day"
)

// TradeDimensions lists the dimensions in display order.
var TradeDimensions = []Dimension{
	DimensionPattern, DimensionZone, DimensionEntryType, DimensionRule, DimensionInstrument, DimensionDay,
}

const (
	defaultTopN         = 5
	defaultMinGroupSize = 2
	notAvailable        = "N/A"
)

var hundred = decimal.NewFromInt(100)

// TradeOptions tunes TradeReport.
type TradeOptions struct {
	// MinTrades is the number of closed trades required for a report.
	MinTrades int
	// Location is used to derive the weekday of the entry date. Defaults to UTC.
	Location *time.Location
	// Labels maps dimensions to their display titles.
	Labels map[string]string
	// Dimensions restricts the grouped dimensions. Defaults to TradeDimensions.
	Dimensions []Dimension
}

// Group is the aggregate of trades sharing one dimension value.
type Group struct {
	Key      string          `json:"key"`
	Count    int             `json:"count"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	TotalPnL decimal.Decimal `json:"total_pnl"`
	AvgPnL   decimal.Decimal `json:"avg_pnl"`
	WinRate  decimal.Decimal `json:"win_rate"`
}

// DimensionReport holds the top groups of one dimension.
type DimensionReport struct {
	Dimension Dimension `json:"dimension"`
	Title     string    `json:"title,omitempty"`
	Groups    []Group   `json:"groups"`
}

// TradeReport summarizes closed trade performance.
type TradeReport struct {
	Sufficient   bool              `json:"sufficient"`
	Message      string            `json:"message,omitempty"`
	ClosedTrades int               `json:"closed_trades"`
	MinTrades    int               `json:"min_trades"`
	Dimensions   []DimensionReport `json:"dimensions,omitempty"`
	Wins         int               `json:"wins"`
	Losses       int               `json:"losses"`
	AvgWin       decimal.Decimal   `json:"avg_win"`
	AvgLoss      decimal.Decimal   `json:"avg_loss"`
	RiskReward   string            `json:"risk_reward"`
	WinRate      decimal.Decimal   `json:"win_rate"`
	TotalPnL     decimal.Decimal   `json:"total_pnl"`
}

type accumulator struct {
	count  int
	wins   int
	losses int
	total  decimal.Decimal
}

func (a *accumulator) add(pnl decimal.Decimal) {
	a.count++
	a.total = a.total.Add(pnl)
	switch pnl.Sign() {
	case 1:
		a.wins++
	case -1:
		a.losses++
	}
}

// ClosedWithPnL filters trades that are closed and carry a P&L.
func ClosedWithPnL(trades []entity.Trade) []entity.Trade {
	var out []entity.Trade
	for _, t := range trades {
		if t.IsClosedWithPnL() {
			out = append(out, t)
		}
	}
	return out
}

// Trades builds the performance report for the closed trades among trades.
// Fewer closed trades than opts.MinTrades yields an insufficient report.
func Trades(trades []entity.Trade, opts TradeOptions) TradeReport {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	dims := opts.Dimensions
	if dims == nil {
		dims = TradeDimensions
	}

	closed := ClosedWithPnL(trades)
	report := TradeReport{
		ClosedTrades: len(closed),
		MinTrades:    opts.MinTrades,
		RiskReward:   notAvailable,
	}
	if len(closed) < opts.MinTrades || len(closed) == 0 {
		report.Message = fmt.Sprintf("Need at least %d completed trades for meaningful analysis. Current: %d",
			opts.MinTrades, len(closed))
		return report
	}
	report.Sufficient = true

	for _, d := range dims {
		acc := make(map[string]*accumulator)
		for _, t := range closed {
			key := dimensionValue(t, d, loc)
			if key == "" {
				continue
			}
			a, ok := acc[key]
			if !ok {
				a = &accumulator{}
				acc[key] = a
			}
			a.add(*t.PnL)
		}
		report.Dimensions = append(report.Dimensions, DimensionReport{
			Dimension: d,
			Title:     opts.Labels[string(d)],
			Groups:    topGroups(acc),
		})
	}

	var winSum, lossSum, total decimal.Decimal
	for _, t := range closed {
		pnl := *t.PnL
		total = total.Add(pnl)
		switch pnl.Sign() {
		case 1:
			report.Wins++
			winSum = winSum.Add(pnl)
		case -1:
			report.Losses++
			lossSum = lossSum.Add(pnl)
		}
	}
	report.TotalPnL = total
	if report.Wins > 0 {
		report.AvgWin = winSum.Div(decimal.NewFromInt(int64(report.Wins)))
	}
	if report.Losses > 0 {
		report.AvgLoss = lossSum.Div(decimal.NewFromInt(int64(report.Losses))).Abs()
	}
	if report.AvgLoss.IsPositive() {
		report.RiskReward = report.AvgWin.Div(report.AvgLoss).StringFixed(2)
	}
	report.WinRate = percent(report.Wins, len(closed))
	return report
}

func dimensionValue(t entity.Trade, d Dimension, loc *time.Location) string {
	switch d {
	case DimensionInstrument:
		return t.Instrument
	case DimensionDay:
		if t.EntryDate.IsZero() {
			return ""
		}
		return t.EntryDate.In(loc).Weekday().String()
	}
	setup, ok := t.Setup()
	if !ok {
		return ""
	}
	switch d {
	case DimensionPattern:
		return setup.Pattern
	case DimensionZone:
		return setup.Zone
	case DimensionEntryType:
		return setup.EntryType
	case DimensionRule:
		return setup.Rule
	}
	return ""
}

// topGroups keeps groups with at least two trades, ordered by total P&L
// descending, and returns the first five.
func topGroups(acc map[string]*accumulator) []Group {
	groups := make([]Group, 0, len(acc))
	for key, a := range acc {
		if a.count < defaultMinGroupSize {
			continue
		}
		groups = append(groups, Group{
			Key:      key,
			Count:    a.count,
			Wins:     a.wins,
			Losses:   a.losses,
			TotalPnL: a.total,
			AvgPnL:   a.total.Div(decimal.NewFromInt(int64(a.count))).Round(2),
			WinRate:  percent(a.wins, a.count),
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].TotalPnL.Cmp(groups[j].TotalPnL); c != 0 {
			return c > 0
		}
		return groups[i].Key < groups[j].Key
	})
	if len(groups) > defaultTopN {
		groups = groups[:defaultTopN]
	}
	return groups
}

// percent returns part/whole*100 rounded to one decimal place.
func percent(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))).Round(1)
}
