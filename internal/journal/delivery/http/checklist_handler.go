package http

import (
	"net/http"
	"strconv"

	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChecklistHandler handles HTTP requests for the pre-trade checklist.
type ChecklistHandler struct {
	checklistService service.ChecklistService
	logger           *logger.Logger
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService service.ChecklistService, logger *logger.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, logger: logger}
}

// RegisterRoutes registers the checklist routes to the Echo group.
func (h *ChecklistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:workspace/checklist", h.GetChecklist)
	g.POST("/:workspace/checklist/evaluate", h.EvaluateChecklist)
	g.POST("/:workspace/checklist/approve", h.ApproveChecklist)
	g.POST("/:workspace/checklist/attempts", h.LogAttempt)
	g.GET("/:workspace/checklist/stats", h.GetStats)
	g.GET("/:workspace/trades/:id/checklist", h.GetTradeChecklist)
}

// GetChecklist godoc
// @Summary Get the checklist
// @Description Get the checklist sections and zone options
// @Tags checklist
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} dto.ChecklistResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/checklist [get]
func (h *ChecklistHandler) GetChecklist(c echo.Context) error {
	resp, err := h.checklistService.Content(c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// EvaluateChecklist godoc
// @Summary Evaluate answers
// @Description Evaluate checklist answers without recording anything
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                       true  "Workspace key"
// @Param   answers    body    dto.ChecklistAnswersRequest  true  "Answers so far"
// @Success 200 {object} checklist.Evaluation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/checklist/evaluate [post]
func (h *ChecklistHandler) EvaluateChecklist(c echo.Context) error {
	var req dto.ChecklistAnswersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	ev, err := h.checklistService.Evaluate(c.Param("workspace"), req.Answers())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// ApproveChecklist godoc
// @Summary Approve the checklist
// @Description Record a passed checklist and issue a one-time approval token for a new trade
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                       true  "Workspace key"
// @Param   answers    body    dto.ChecklistAnswersRequest  true  "Complete answers"
// @Success 201 {object} dto.ApprovalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/checklist/approve [post]
func (h *ChecklistHandler) ApproveChecklist(c echo.Context) error {
	var req dto.ChecklistAnswersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	resp, err := h.checklistService.Approve(c.Request().Context(), c.Param("workspace"), req.Answers())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// LogAttempt godoc
// @Summary Log a failed attempt
// @Description Record the current answers as a failed checklist attempt
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                       true  "Workspace key"
// @Param   answers    body    dto.ChecklistAnswersRequest  true  "Answers so far"
// @Success 201 {object} entity.ChecklistAttempt
// @Failure 400 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/checklist/attempts [post]
func (h *ChecklistHandler) LogAttempt(c echo.Context) error {
	var req dto.ChecklistAnswersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	attempt, err := h.checklistService.LogAttempt(c.Request().Context(), c.Param("workspace"), req.Answers())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, attempt)
}

// GetStats godoc
// @Summary Checklist statistics
// @Description Pass and fail rates over the most recent attempts
// @Tags checklist
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} analytics.ChecklistReport
// @Router /workspaces/{workspace}/checklist/stats [get]
func (h *ChecklistHandler) GetStats(c echo.Context) error {
	report, err := h.checklistService.Stats(c.Request().Context(), c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetTradeChecklist godoc
// @Summary Trade checklist
// @Description Get the checklist snapshot recorded when the trade was opened
// @Tags checklist
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Param   id         path    int     true  "Trade ID"
// @Success 200 {object} entity.ChecklistLog
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/trades/{id}/checklist [get]
func (h *ChecklistHandler) GetTradeChecklist(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid trade ID"))
	}
	log, err := h.checklistService.TradeChecklist(c.Request().Context(), c.Param("workspace"), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, log)
}
