package dto

import (
	"time"

	"golang-trade-journal/internal/journal/checklist"
)

// ChecklistAnswersRequest carries the answers given so far.
type ChecklistAnswersRequest struct {
	Responses map[string]string `json:"responses" validate:"dive,keys,required,endkeys,omitempty,oneof=yes no"`
	Zone      string            `json:"zone" validate:"omitempty,oneof=Green Amber Red"`
}

// Answers converts the request into gate answers.
func (r ChecklistAnswersRequest) Answers() checklist.Answers {
	return checklist.Answers{Responses: r.Responses, Zone: r.Zone}
}

// ChecklistResponse is the checklist content.
type ChecklistResponse struct {
	Intro    string              `json:"intro"`
	Sections []checklist.Section `json:"sections"`
	Zones    []string            `json:"zones"`
}

// ApprovalResponse is returned when the checklist passes.
type ApprovalResponse struct {
	Token      string               `json:"token"`
	ExpiresAt  time.Time            `json:"expires_at"`
	Evaluation checklist.Evaluation `json:"evaluation"`
}
