// Package v1 provides HTTP handlers for the kanban web app API.
package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bes-dev/flowento/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/users/:user_id/projects", h.ListProjects)
	e.POST("/v1/users/:user_id/projects", h.CreateProject)
	e.GET("/v1/users/:user_id/projects/:project_id", h.GetProject)

	e.POST("/v1/users/:user_id/projects/:project_id/tasks", h.CreateTask)
	e.PATCH("/v1/users/:user_id/projects/:project_id/tasks/:task_id", h.UpdateTask)

	e.POST("/v1/users/:user_id/board", h.ApplyBoard)
	e.POST("/v1/users/:user_id/chat", h.Chat)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// userID parses the :user_id path param.
func userID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("user_id"), 10, 64)
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}
