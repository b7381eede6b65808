package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bes-dev/flowento/internal/domain"
	"github.com/bes-dev/flowento/internal/service"
)

// CreateTask adds a task to a project.
// POST /v1/users/:user_id/projects/:project_id/tasks
func (h *Handler) CreateTask(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}
	projectID, err := strconv.Atoi(c.Param("project_id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "project_id must be a number")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Deadline    string `json:"deadline"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	task, err := h.service.AddTask(ctx, uid, projectID, req.Name, req.Description, req.Deadline)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if task == nil {
		return errorJSON(c, http.StatusNotFound, "project not found")
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
// PATCH /v1/users/:user_id/projects/:project_id/tasks/:task_id
func (h *Handler) UpdateTask(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}
	projectID, err := strconv.Atoi(c.Param("project_id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "project_id must be a number")
	}
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "task_id must be a number")
	}

	var update domain.TaskUpdate
	if err := c.Bind(&update); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	ok, err := h.service.UpdateTask(ctx, uid, projectID, taskID, update)
	if err != nil {
		if errors.Is(err, service.ErrBlocked) {
			return errorJSON(c, http.StatusUnprocessableEntity, "update rejected by board policy")
		}
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}

	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}

// ApplyBoard applies one embedded-app board payload.
// POST /v1/users/:user_id/board
func (h *Handler) ApplyBoard(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "failed to read request body")
	}

	ctx := c.Request().Context()
	result, err := h.service.ApplyBoardPayload(ctx, uid, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedPayload):
			return errorJSON(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBlocked):
			return errorJSON(c, http.StatusUnprocessableEntity, "rejected by board policy")
		default:
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}
	}
	if !result.Applied {
		return errorJSON(c, http.StatusNotFound, "project or task not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"action":  result.Action,
		"applied": result.Applied,
		"task":    result.Task,
	})
}

// Chat forwards a free-text message to the assistant.
// POST /v1/users/:user_id/chat
func (h *Handler) Chat(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "user_id must be a number")
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "message is required")
	}

	ctx := c.Request().Context()
	reply := h.service.GenerateReply(ctx, uid, req.Message)

	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
