// Package checklist implements the pre-trade decision gate.
package checklist

import (
	"errors"
	"fmt"
	"time"

	"golang-trade-journal/internal/entity"
)

const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Failure reasons, in precedence order.
const (
	ReasonRedZone     = "Red Zone"
	ReasonZoneMissing = "Zone Missing"
	ReasonAnsweredNo  = "Checklist answered NO"
)

// ErrInvalidAnswers is returned when answers reference unknown items or values.
var ErrInvalidAnswers = errors.New("invalid checklist answers")

// State is the gate state derived from a set of answers.
type State string

const (
	StateUnanswered State = "unanswered"
	StateInProgress State = "in_progress"
	StateApproved   State = "approved"
	StateRejected   State = "rejected"
)

// Answers are the responses given so far. Responses maps boolean item ids to
// "yes" or "no"; Zone holds the selected zone.
type Answers struct {
	Responses map[string]string `json:"responses"`
	Zone      string            `json:"zone"`
}

// Evaluation is the result of checking a set of answers against the gate.
type Evaluation struct {
	State         State    `json:"state"`
	AllYes        bool     `json:"all_yes"`
	ZoneMissing   bool     `json:"zone_missing"`
	ZoneInvalid   bool     `json:"zone_invalid"`
	CanProceed    bool     `json:"can_proceed"`
	HasAnyInput   bool     `json:"has_any_input"`
	FailureReason string   `json:"failure_reason,omitempty"`
	FailedItems   []string `json:"failed_items,omitempty"`
	Unanswered    []string `json:"unanswered,omitempty"`
}

// Validate rejects unknown item ids, answers other than yes/no, and unknown zones.
func Validate(a Answers) error {
	known := make(map[string]struct{})
	for _, id := range BooleanItemIDs() {
		known[id] = struct{}{}
	}
	for id, v := range a.Responses {
		if id == ZoneItemID {
			continue
		}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown item %q", ErrInvalidAnswers, id)
		}
		if v != "" && v != AnswerYes && v != AnswerNo {
			return fmt.Errorf("%w: item %q must be yes or no", ErrInvalidAnswers, id)
		}
	}
	if a.Zone != "" && !validZone(a.Zone) {
		return fmt.Errorf("%w: zone must be one of Green, Amber, Red", ErrInvalidAnswers)
	}
	return nil
}

func validZone(z string) bool {
	for _, v := range Zones {
		if v == z {
			return true
		}
	}
	return false
}

// Evaluate derives the gate state. The gate approves only when every yes/no
// item is answered yes and the zone is set to something other than Red.
func Evaluate(a Answers) Evaluation {
	ev := Evaluation{AllYes: true}
	for _, id := range BooleanItemIDs() {
		switch a.Responses[id] {
		case AnswerYes:
		case AnswerNo:
			ev.AllYes = false
			ev.FailedItems = append(ev.FailedItems, id)
		default:
			ev.AllYes = false
			ev.Unanswered = append(ev.Unanswered, id)
		}
	}
	for _, v := range a.Responses {
		if v != "" {
			ev.HasAnyInput = true
			break
		}
	}
	if a.Zone != "" {
		ev.HasAnyInput = true
	}

	ev.ZoneMissing = a.Zone == ""
	ev.ZoneInvalid = a.Zone == ZoneRed
	if ev.ZoneMissing {
		ev.Unanswered = append(ev.Unanswered, ZoneItemID)
	}
	ev.CanProceed = ev.AllYes && !ev.ZoneMissing && !ev.ZoneInvalid

	switch {
	case ev.CanProceed:
		ev.State = StateApproved
	case !ev.HasAnyInput:
		ev.State = StateUnanswered
	case ev.ZoneInvalid || len(ev.FailedItems) > 0:
		ev.State = StateRejected
	default:
		ev.State = StateInProgress
	}
	if !ev.CanProceed {
		ev.FailureReason = FailureReason(a)
	}
	return ev
}

// FailureReason returns the reason recorded for a failed attempt.
// Red Zone wins over a missing zone, which wins over any "no" answer.
func FailureReason(a Answers) string {
	switch {
	case a.Zone == ZoneRed:
		return ReasonRedZone
	case a.Zone == "":
		return ReasonZoneMissing
	default:
		return ReasonAnsweredNo
	}
}

// Snapshot freezes the answers at the given time.
func Snapshot(a Answers, at time.Time) entity.ChecklistSnapshot {
	responses := make(map[string]string, len(a.Responses))
	for k, v := range a.Responses {
		if k == ZoneItemID {
			continue
		}
		responses[k] = v
	}
	return entity.ChecklistSnapshot{
		Responses:  responses,
		Zone:       a.Zone,
		RecordedAt: at.UTC(),
		AllYes:     Evaluate(a).AllYes,
	}
}

// AllYes returns answers with every boolean item answered yes and the given zone.
func AllYes(zone string) Answers {
	responses := make(map[string]string)
	for _, id := range BooleanItemIDs() {
		responses[id] = AnswerYes
	}
	return Answers{Responses: responses, Zone: zone}
}
