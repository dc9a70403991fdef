package http

import (
	"net/http"

	"golang-trade-journal/internal/journal/dto"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PlanHandler handles HTTP requests for the trading plan.
type PlanHandler struct {
	planService service.PlanService
	logger      *logger.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, logger *logger.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, logger: logger}
}

// RegisterRoutes registers the plan routes to the Echo group.
func (h *PlanHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:workspace/plan", h.GetPlan)
	g.PUT("/:workspace/plan", h.SavePlan)
}

// GetPlan godoc
// @Summary Get the trading plan
// @Tags plan
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} entity.TradingPlan
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/plan [get]
func (h *PlanHandler) GetPlan(c echo.Context) error {
	plan, err := h.planService.Load(c.Request().Context(), c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// SavePlan godoc
// @Summary Save the trading plan
// @Tags plan
// @Accept  json
// @Produce  json
// @Param   workspace  path    string               true  "Workspace key"
// @Param   plan       body    dto.SavePlanRequest  true  "Plan content"
// @Success 200 {object} entity.TradingPlan
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace}/plan [put]
func (h *PlanHandler) SavePlan(c echo.Context) error {
	var req dto.SavePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	plan, err := h.planService.Save(c.Request().Context(), c.Param("workspace"), req.Content)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, plan)
}
