package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ListProjects returns the user's projects in insertion order.
// GET /v1/users/:user_id/projects
func (h *Handler) ListProjects(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}

	ctx := c.Request().Context()
	projects, err := h.service.GetProjects(ctx, uid)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"projects": projects,
	})
}

// CreateProject creates a new project.
// POST /v1/users/:user_id/projects
func (h *Handler) CreateProject(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	project, err := h.service.AddProject(ctx, uid, req.Name, req.Description)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, project)
}

// GetProject retrieves a project with its tasks.
// GET /v1/users/:user_id/projects/:project_id
func (h *Handler) GetProject(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}
	projectID, err := strconv.Atoi(c.Param("project_id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "project_id must be a number")
	}

	ctx := c.Request().Context()
	project, err := h.service.GetProject(ctx, uid, projectID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if project == nil {
		return errorJSON(c, http.StatusNotFound, "project not found")
	}

	return c.JSON(http.StatusOK, project)
}
