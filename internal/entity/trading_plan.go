package entity

import "time"

// TradingPlan is the free-text playbook of a workspace.
type TradingPlan struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
