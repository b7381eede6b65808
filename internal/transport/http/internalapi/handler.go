// Package internalapi provides HTTP handlers for the chat transport adapter.
// The adapter parses raw transport updates (commands, callbacks, messages,
// web-app payloads) and posts them here as structured events.
package internalapi

import (
	"github.com/labstack/echo/v4"

	"github.com/bes-dev/flowento/internal/bot"
)

// Handler handles internal HTTP requests from the chat transport adapter.
type Handler struct {
	router *bot.Router
}

// NewHandler creates a new internal API handler.
func NewHandler(router *bot.Router) *Handler {
	return &Handler{
		router: router,
	}
}

// RegisterRoutes registers internal routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/internal/events/command", h.Command)
	e.POST("/internal/events/callback", h.Callback)
	e.POST("/internal/events/message", h.Message)
	e.POST("/internal/events/webapp", h.WebAppData)
}
