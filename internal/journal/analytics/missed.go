package analytics

import (
	"fmt"
	"sort"
	"time"

	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// MissedOptions tunes Missed.
type MissedOptions struct {
	MinMissed int
	Location  *time.Location
	Labels    map[string]string
}

// MissedGroup aggregates missed trades sharing one value.
type MissedGroup struct {
	Key      string          `json:"key"`
	Count    int             `json:"count"`
	TotalPct decimal.Decimal `json:"total_pct"`
}

// MissedDimension holds the top groups of one missed-trade dimension.
type MissedDimension struct {
	Dimension Dimension     `json:"dimension"`
	Title     string        `json:"title,omitempty"`
	Groups    []MissedGroup `json:"groups"`
}

// MissedReport summarizes the potential return left on the table.
type MissedReport struct {
	Sufficient bool              `json:"sufficient"`
	Message    string            `json:"message,omitempty"`
	Count      int               `json:"count"`
	MinMissed  int               `json:"min_missed"`
	SumPct     decimal.Decimal   `json:"sum_pct"`
	AvgPct     decimal.Decimal   `json:"avg_pct"`
	Dimensions []MissedDimension `json:"dimensions,omitempty"`
}

// Missed builds the missed-opportunity report, grouping by weekday of the
// log time, instrument and pattern.
func Missed(missed []entity.MissedTrade, opts MissedOptions) MissedReport {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	report := MissedReport{Count: len(missed), MinMissed: opts.MinMissed}
	if len(missed) == 0 || len(missed) < opts.MinMissed {
		report.Message = fmt.Sprintf("Log at least %d missed opportunities to unlock analytics. Current: %d",
			opts.MinMissed, len(missed))
		return report
	}
	report.Sufficient = true

	for _, m := range missed {
		report.SumPct = report.SumPct.Add(m.PotentialReturn)
	}
	report.AvgPct = report.SumPct.Div(decimal.NewFromInt(int64(len(missed)))).Round(2)

	keyFns := []struct {
		dim Dimension
		key func(entity.MissedTrade) string
	}{
		{DimensionDay, func(m entity.MissedTrade) string {
			if m.CreatedAt.IsZero() {
				return ""
			}
			return m.CreatedAt.In(loc).Weekday().String()
		}},
		{DimensionInstrument, func(m entity.MissedTrade) string { return m.Instrument }},
		{DimensionPattern, func(m entity.MissedTrade) string { return m.Pattern }},
	}
	for _, k := range keyFns {
		acc := make(map[string]*MissedGroup)
		for _, m := range missed {
			key := k.key(m)
			if key == "" {
				continue
			}
			g, ok := acc[key]
			if !ok {
				g = &MissedGroup{Key: key}
				acc[key] = g
			}
			g.Count++
			g.TotalPct = g.TotalPct.Add(m.PotentialReturn)
		}
		groups := make([]MissedGroup, 0, len(acc))
		for _, g := range acc {
			groups = append(groups, *g)
		}
		sort.SliceStable(groups, func(i, j int) bool {
			if c := groups[i].TotalPct.Cmp(groups[j].TotalPct); c != 0 {
				return c > 0
			}
			return groups[i].Key < groups[j].Key
		})
		if len(groups) > defaultTopN {
			groups = groups[:defaultTopN]
		}
		report.Dimensions = append(report.Dimensions, MissedDimension{
			Dimension: k.dim,
			Title:     opts.Labels[string(k.dim)],
			Groups:    groups,
		})
	}
	return report
}
