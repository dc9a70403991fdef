package entity

import "time"

// ChecklistStatus is the outcome recorded for a checklist run.
type ChecklistStatus string

const (
	ChecklistStatusPassed ChecklistStatus = "passed"
	ChecklistStatusFailed ChecklistStatus = "failed"
)

// ChecklistSnapshot is the frozen set of answers given to the pre-trade checklist.
type ChecklistSnapshot struct {
	Responses  map[string]string `json:"responses"`
	Zone       string            `json:"zone,omitempty"`
	RecordedAt time.Time         `json:"recordedAt"`
	AllYes     bool              `json:"allYes"`
}

// ChecklistLog links an approved snapshot to the trade it unlocked.
type ChecklistLog struct {
	ID        int64             `json:"id"`
	TradeID   int64             `json:"trade_id"`
	Snapshot  ChecklistSnapshot `json:"snapshot"`
	Zone      string            `json:"zone,omitempty"`
	Status    ChecklistStatus   `json:"status"`
	Workspace string            `json:"workspace"`
	CreatedAt time.Time         `json:"created_at"`
}

// ChecklistAttempt records every pass or fail of the checklist.
type ChecklistAttempt struct {
	ID            int64             `json:"id"`
	Snapshot      ChecklistSnapshot `json:"snapshot"`
	Zone          string            `json:"zone,omitempty"`
	Status        ChecklistStatus   `json:"status"`
	Workspace     string            `json:"workspace"`
	FailureReason string            `json:"failure_reason,omitempty"`
	FailedItems   []string          `json:"failed_items,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// PendingApproval is issued when the checklist passes and must be presented
// once to create a trade before it expires.
type PendingApproval struct {
	Token     string            `json:"token"`
	Workspace string            `json:"workspace"`
	Snapshot  ChecklistSnapshot `json:"snapshot"`
	ExpiresAt time.Time         `json:"expires_at"`
}
