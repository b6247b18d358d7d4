package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Guides     service.GuideService
	Chat       service.ChatService
	Structured service.StructuredGuideService
	Health     service.HealthService
}

func RegisterRoutes(app *fiber.App, svcs Services) {
	NewHealthHandler(svcs.Health).Register(app)

	api := app.Group("/api")
	NewSearchHandler(svcs.Guides).Register(api)
	NewGuideHandler(svcs.Guides, svcs.Structured).Register(api)
	NewChatHandler(svcs.Chat).Register(api)
}
