package internalapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bes-dev/flowento/internal/bot"
)

type eventUser struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name,omitempty"`
}

func (u eventUser) botUser() bot.User {
	return bot.User{ID: u.UserID, FirstName: u.FirstName}
}

// Command handles a parsed slash command.
// POST /internal/events/command
func (h *Handler) Command(c echo.Context) error {
	var req struct {
		eventUser
		Name string   `json:"name"`
		Args []string `json:"args"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id and name are required"})
	}

	ctx := c.Request().Context()
	reply := h.router.HandleCommand(ctx, req.botUser(), req.Name, req.Args)
	return c.JSON(http.StatusOK, reply)
}

// Callback handles a button-press callback payload.
// POST /internal/events/callback
func (h *Handler) Callback(c echo.Context) error {
	var req struct {
		eventUser
		Payload string `json:"payload"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == 0 || req.Payload == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id and payload are required"})
	}

	ctx := c.Request().Context()
	reply := h.router.HandleCallback(ctx, req.botUser(), req.Payload)
	return c.JSON(http.StatusOK, reply)
}

// Message handles a free-text message.
// POST /internal/events/message
func (h *Handler) Message(c echo.Context) error {
	var req struct {
		eventUser
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == 0 || req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id and text are required"})
	}

	ctx := c.Request().Context()
	reply := h.router.HandleText(ctx, req.botUser(), req.Text)
	return c.JSON(http.StatusOK, reply)
}

// WebAppData handles an embedded-app payload. The payload is forwarded
// verbatim; the bot layer owns its decoding and error handling.
// POST /internal/events/webapp
func (h *Handler) WebAppData(c echo.Context) error {
	var req struct {
		eventUser
		Data json.RawMessage `json:"data"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	ctx := c.Request().Context()
	reply := h.router.HandleWebAppData(ctx, req.botUser(), req.Data)
	return c.JSON(http.StatusOK, reply)
}
