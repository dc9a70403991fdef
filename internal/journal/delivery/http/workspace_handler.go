package http

import (
	"net/http"

	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WorkspaceHandler handles HTTP requests for the workspace catalogue.
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
	logger           *logger.Logger
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService service.WorkspaceService, logger *logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, logger: logger}
}

// RegisterRoutes registers the workspace routes to the Echo group.
func (h *WorkspaceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListWorkspaces)
	g.GET("/:workspace", h.GetWorkspace)
}

// ListWorkspaces godoc
// @Summary List workspaces
// @Description List the enabled journal workspaces
// @Tags workspaces
// @Produce  json
// @Success 200 {array} dto.WorkspaceSummary
// @Router /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c echo.Context) error {
	return c.JSON(http.StatusOK, h.workspaceService.List())
}

// GetWorkspace godoc
// @Summary Describe a workspace
// @Description Get the fields, vocabularies and defaults of a workspace
// @Tags workspaces
// @Produce  json
// @Param   workspace  path    string  true  "Workspace key"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workspaces/{workspace} [get]
func (h *WorkspaceHandler) GetWorkspace(c echo.Context) error {
	resp, err := h.workspaceService.Describe(c.Param("workspace"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
