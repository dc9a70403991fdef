package http

import (
	"net/http"
	"strconv"

	"golang-trade-journal/internal/entity"
	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/common"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TradeHandler handles HTTP requests for trades and their history.
type TradeHandler struct {
	tradeService   service.TradeService
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService service.TradeService, historyService service.HistoryService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, historyService: historyService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:workspace/trades", h.ListTrades)
	g.POST("/:workspace/trades", h.CreateTrade)
	g.GET("/:workspace/trades/risk-budget", h.GetRiskBudget)
	g.POST("/:workspace/trades/:id/close", h.CloseTrade)
	g.GET("/:workspace/history", h.GetHistory)
}

func statusParam(c echo.Context) entity.TradeStatus {
	s := c.QueryParam("status")
	if s == "all" {
		return ""
	}
	return entity.TradeStatus(s)
}

// ListTrades godoc
// @Summary List trades
// @Description List trades, newest first
// @Tags trades
// @Produce  json
// @Param   workspace  path    string  true   "Workspace key"
// @Param   status     query   string  false  "open, closed or all"
// @Success 200 {array} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/trades [get]
func (h *TradeHandler) ListTrades(c echo.Context) error {
	trades, err := h.tradeService.ListTrades(c.Request().Context(), c.Param("workspace"), statusParam(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, trades)
}

// CreateTrade godoc
// @Summary Open a trade
// @Description Open a trade. Checklist-gated workspaces need an approval token in the body or the X-Checklist-Approval header.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                  true  "Workspace key"
// @Param   trade      body    dto.CreateTradeRequest  true  "Trade to open"
// @Success 201 {object} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/trades [post]
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	var req dto.CreateTradeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	if req.ApprovalToken == "" {
		req.ApprovalToken = c.Request().Header.Get(common.HeaderApprovalToken)
	}
	trade, err := h.tradeService.CreateTrade(c.Request().Context(), c.Param("workspace"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, trade)
}

// GetRiskBudget godoc
// @Summary Risk budget
// @Description Current balance and the largest risk a new trade may declare
// @Tags trades
// @Produce  json
// @Param   workspace  path    string  true   "Workspace key"
// @Param   account    query   string  false  "Account for multi-account workspaces"
// @Success 200 {object} dto.RiskBudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/trades/risk-budget [get]
func (h *TradeHandler) GetRiskBudget(c echo.Context) error {
	budget, err := h.tradeService.RiskBudget(c.Request().Context(), c.Param("workspace"), c.QueryParam("account"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, budget)
}

// CloseTrade godoc
// @Summary Close a trade
// @Description Close an open trade and book its P&L to the balance
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                 true  "Workspace key"
// @Param   id         path    int                    true  "Trade ID"
// @Param   close      body    dto.CloseTradeRequest  true  "Exit details"
// @Success 200 {object} dto.CloseTradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/trades/{id}/close [post]
func (h *TradeHandler) CloseTrade(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid trade ID"))
	}
	var req dto.CloseTradeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	resp, err := h.tradeService.CloseTrade(c.Request().Context(), c.Param("workspace"), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHistory godoc
// @Summary Trade history
// @Description Trades with win rate, P&L, balance and analytics
// @Tags trades
// @Produce  json
// @Param   workspace  path    string  true   "Workspace key"
// @Param   status     query   string  false  "open, closed or all"
// @Success 200 {object} dto.HistoryResponse
// @Router /workspaces/{workspace}/history [get]
func (h *TradeHandler) GetHistory(c echo.Context) error {
	resp, err := h.historyService.History(c.Request().Context(), c.Param("workspace"), statusParam(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
