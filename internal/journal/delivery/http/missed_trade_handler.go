package http

import (
	"net/http"

	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MissedTradeHandler handles HTTP requests for missed trades.
type MissedTradeHandler struct {
	missedTradeService service.MissedTradeService
	logger             *logger.Logger
}

// NewMissedTradeHandler creates a new MissedTradeHandler.
func NewMissedTradeHandler(missedTradeService service.MissedTradeService, logger *logger.Logger) *MissedTradeHandler {
	return &MissedTradeHandler{missedTradeService: missedTradeService, logger: logger}
}

// RegisterRoutes registers the missed trade routes to the Echo group.
func (h *MissedTradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:workspace/missed-trades", h.ListMissedTrades)
	g.POST("/:workspace/missed-trades", h.CreateMissedTrade)
	g.GET("/:workspace/missed-trades/analytics", h.GetMissedAnalytics)
}

// ListMissedTrades godoc
// @Summary List missed trades
// @Tags missed-trades
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {array} entity.MissedTrade
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/missed-trades [get]
func (h *MissedTradeHandler) ListMissedTrades(c echo.Context) error {
	missed, err := h.missedTradeService.List(c.Request().Context(), c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, missed)
}

// CreateMissedTrade godoc
// @Summary Log a missed trade
// @Tags missed-trades
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                        true  "Workspace key"
// @Param   missed     body    dto.CreateMissedTradeRequest  true  "Missed opportunity"
// @Success 201 {object} entity.MissedTrade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/missed-trades [post]
func (h *MissedTradeHandler) CreateMissedTrade(c echo.Context) error {
	var req dto.CreateMissedTradeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	missed, err := h.missedTradeService.Create(c.Request().Context(), c.Param("workspace"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, missed)
}

// GetMissedAnalytics godoc
// @Summary Missed trade analytics
// @Tags missed-trades
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} analytics.MissedReport
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/missed-trades/analytics [get]
func (h *MissedTradeHandler) GetMissedAnalytics(c echo.Context) error {
	report, err := h.missedTradeService.Analytics(c.Request().Context(), c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, report)
}
