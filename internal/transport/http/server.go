// Package http provides the HTTP server backing the embedded kanban web app.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bes-dev/flowento/internal/bot"
	"github.com/bes-dev/flowento/internal/service"
	"github.com/bes-dev/flowento/internal/transport/http/internalapi"
	v1 "github.com/bes-dev/flowento/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It serves the JSON API
// the embedded kanban app talks to, plus the internal events API the chat
// transport adapter posts parsed updates to.
func NewServer(svc *service.Service, router *bot.Router) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)
	v1Handler.RegisterRoutes(e)

	internalHandler := internalapi.NewHandler(router)
	internalHandler.RegisterRoutes(e)

	return e
}
