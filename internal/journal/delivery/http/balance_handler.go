package http

import (
	"net/http"

	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BalanceHandler handles HTTP requests for the balance ledger.
type BalanceHandler struct {
	balanceService service.BalanceService
	logger         *logger.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService service.BalanceService, logger *logger.Logger) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService, logger: logger}
}

// RegisterRoutes registers the balance routes to the Echo group.
func (h *BalanceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:workspace/balance", h.GetBalance)
	g.POST("/:workspace/balance", h.AdjustBalance)
}

// GetBalance godoc
// @Summary Balance summary
// @Description Current balance per account and the most recent ledger rows
// @Tags balance
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} dto.BalanceSummaryResponse
// @Router /workspaces/{workspace}/balance [get]
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	resp, err := h.balanceService.Summary(c.Request().Context(), c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AdjustBalance godoc
// @Summary Deposit or withdraw
// @Description Append a manual ledger movement. Negative amounts are withdrawals.
// @Tags balance
// @Accept  json
// @Produce  json
// @Param   workspace  path    string                    true  "Workspace key"
// @Param   movement   body    dto.BalanceAdjustRequest  true  "Movement"
// @Success 201 {object} entity.BalanceEntry
// @Failure 400 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/balance [post]
func (h *BalanceHandler) AdjustBalance(c echo.Context) error {
	var req dto.BalanceAdjustRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	entry, err := h.balanceService.Adjust(c.Request().Context(), c.Param("workspace"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
