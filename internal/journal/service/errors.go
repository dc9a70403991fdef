package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrFeatureDisabled  = errors.New("feature disabled")
	ErrApprovalRequired = errors.New("checklist approval required")
	ErrApprovalInvalid  = errors.New("checklist approval is invalid or expired")
	ErrChecklistFailed  = errors.New("checklist not passed")
	ErrTradeNotOpen     = errors.New("trade is not open")
)

// timeNow is replaced in tests.
var timeNow = time.Now

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RiskLimitError is returned when a new trade risks more than the workspace allows.
type RiskLimitError struct {
	RiskAmount   decimal.Decimal
	MaxRisk      decimal.Decimal
	RiskFraction decimal.Decimal
}

func (e *RiskLimitError) Error() string {
	return fmt.Sprintf("Risk exceeds %s%% limit (%s)",
		e.RiskFraction.Mul(decimal.NewFromInt(100)).StringFixed(1), e.MaxRisk.StringFixed(2))
}

func requireFeature(enabled bool) error {
	if !enabled {
		return ErrFeatureDisabled
	}
	return nil
}
