package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups the journal HTTP handlers.
type Handlers struct {
	Workspace   *WorkspaceHandler
	Checklist   *ChecklistHandler
	Trade       *TradeHandler
	Balance     *BalanceHandler
	MissedTrade *MissedTradeHandler
	Plan        *PlanHandler
}

// RegisterRoutes mounts the journal API under /api/v1/workspaces and adds /health.
func (h Handlers) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	workspaces := e.Group("/api/v1/workspaces")
	h.Workspace.RegisterRoutes(workspaces)
	h.Checklist.RegisterRoutes(workspaces)
	h.Trade.RegisterRoutes(workspaces)
	h.Balance.RegisterRoutes(workspaces)
	h.MissedTrade.RegisterRoutes(workspaces)
	h.Plan.RegisterRoutes(workspaces)
}
