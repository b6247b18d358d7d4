package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

// Banner is served on GET / for anyone opening the API URL in a browser.
const Banner = "AutoGuide AI backend is running ✅ Try /health or /api endpoints."

type HealthHandler struct {
	svc service.HealthService
}

func NewHealthHandler(svc service.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/ready", h.ready)
}

func (h *HealthHandler) root(c *fiber.Ctx) error {
	return c.SendString(Banner)
}

// health is the liveness check. It never touches dependencies.
func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (h *HealthHandler) ready(c *fiber.Ctx) error {
	details, err := h.svc.Ready(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": details,
		})
	}
	return c.JSON(fiber.Map{"status": "ready", "details": details})
}
