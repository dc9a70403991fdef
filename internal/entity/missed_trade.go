package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MissedTrade is an opportunity that was spotted but not taken.
type MissedTrade struct {
	ID              int64           `json:"id"`
	Instrument      string          `json:"instrument"`
	Direction       string          `json:"direction"`
	BeforeURL       string          `json:"before_url,omitempty"`
	AfterURL        string          `json:"after_url,omitempty"`
	Pattern         string          `json:"pattern,omitempty"`
	PotentialReturn decimal.Decimal `json:"potential_return"`
	CreatedAt       time.Time       `json:"created_at"`
}
