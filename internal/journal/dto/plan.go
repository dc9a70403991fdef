package dto

// SavePlanRequest replaces the trading plan content.
type SavePlanRequest struct {
	Content string `json:"content"`
}
