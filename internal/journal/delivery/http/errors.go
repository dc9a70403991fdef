package http

import (
	"errors"
	"net/http"

	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func errorBody(msg string) echo.Map {
	return echo.Map{"error": "Error: " + msg}
}

func statusOf(err error) int {
	var (
		validationErr *service.ValidationError
		riskErr       *service.RiskLimitError
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &riskErr), errors.Is(err, service.ErrChecklistFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrApprovalRequired), errors.Is(err, service.ErrApprovalInvalid):
		return http.StatusForbidden
	case errors.Is(err, service.ErrFeatureDisabled),
		errors.Is(err, workspace.ErrUnknownWorkspace),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTradeNotOpen):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status it maps to. Unexpected errors are logged.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	status := statusOf(err)
	msg := err.Error()
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msg = describeValidation(fieldErrs)
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed",
			logger.StringField("method", c.Request().Method),
			logger.StringField("path", c.Path()),
			logger.ErrorField(err),
		)
	}
	return c.JSON(status, errorBody(msg))
}

// bindAndValidate decodes the request body into req and validates it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return &service.ValidationError{Message: "Invalid request payload"}
	}
	return c.Validate(req)
}
