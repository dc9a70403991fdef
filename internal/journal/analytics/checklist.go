package analytics

import (
	"sort"
	"strings"

	"golang-trade-journal/internal/entity"

	"github.com/shopspring/decimal"
)

const unspecifiedReason = "Unspecified"

// ReasonCount is the number of failures recorded with one reason.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// ChecklistReport summarizes checklist discipline over recent attempts.
type ChecklistReport struct {
	Total       int             `json:"total"`
	Passes      int             `json:"passes"`
	Fails       int             `json:"fails"`
	PassRate    decimal.Decimal `json:"pass_rate"`
	FailRate    decimal.Decimal `json:"fail_rate"`
	FailReasons []ReasonCount   `json:"fail_reasons"`
	TopFailure  *ReasonCount    `json:"top_failure,omitempty"`
}

// Checklist counts passes and failures and ranks failure reasons.
func Checklist(attempts []entity.ChecklistAttempt) ChecklistReport {
	report := ChecklistReport{Total: len(attempts), FailReasons: []ReasonCount{}}
	reasons := make(map[string]int)
	for _, a := range attempts {
		switch entity.ChecklistStatus(strings.ToLower(string(a.Status))) {
		case entity.ChecklistStatusPassed:
			report.Passes++
		case entity.ChecklistStatusFailed:
			report.Fails++
			reason := a.FailureReason
			if reason == "" {
				reason = unspecifiedReason
			}
			reasons[reason]++
		}
	}
	report.PassRate = percent(report.Passes, report.Total)
	report.FailRate = percent(report.Fails, report.Total)

	for r, c := range reasons {
		report.FailReasons = append(report.FailReasons, ReasonCount{Reason: r, Count: c})
	}
	sort.Slice(report.FailReasons, func(i, j int) bool {
		if report.FailReasons[i].Count != report.FailReasons[j].Count {
			return report.FailReasons[i].Count > report.FailReasons[j].Count
		}
		return report.FailReasons[i].Reason < report.FailReasons[j].Reason
	})
	if len(report.FailReasons) > 0 {
		top := report.FailReasons[0]
		report.TopFailure = &top
	}
	return report
}
