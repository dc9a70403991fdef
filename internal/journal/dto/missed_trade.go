package dto

import "github.com/shopspring/decimal"

// CreateMissedTradeRequest is the DTO for logging a missed opportunity.
type CreateMissedTradeRequest struct {
	Instrument      string           `json:"instrument" validate:"required,max=32"`
	Direction       string           `json:"direction" validate:"required"`
	BeforeURL       string           `json:"before_url" validate:"omitempty,url"`
	AfterURL        string           `json:"after_url" validate:"omitempty,url"`
	Pattern         string           `json:"pattern"`
	PotentialReturn *decimal.Decimal `json:"potential_return" validate:"required" swaggertype:"string"`
}
