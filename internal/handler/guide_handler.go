package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/autoguide-ai/server/internal/models"
	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

// GuideHandler wires HTTP → GuideService and StructuredGuideService.
type GuideHandler struct {
	svc        service.GuideService
	structured service.StructuredGuideService
}

// NewGuideHandler creates a GuideHandler instance.
func NewGuideHandler(svc service.GuideService, structured service.StructuredGuideService) *GuideHandler {
	return &GuideHandler{svc: svc, structured: structured}
}

// Register mounts the /guides routes on the given router group.
// "/guides/structured" is registered before "/guides/:id" routes so it is
// never captured as an id.
func (h *GuideHandler) Register(r fiber.Router) {
	r.Post("/guides", h.create)
	r.Post("/guides/structured", h.createStructured)
	r.Get("/guides/:id", h.get)
	r.Post("/guides/:id/regenerate", h.regenerate)
	r.Get("/guides/:id/related", h.related)
}

type createGuideResponse struct {
	ID        string         `json:"id"`
	Vehicle   models.Vehicle `json:"vehicle"`
	Question  string         `json:"question"`
	AIAnswer  string         `json:"aiAnswer"`
	CreatedAt time.Time      `json:"createdAt"`
}

type regenerateResponse struct {
	AIAnswer string               `json:"aiAnswer"`
	Chat     []models.ChatMessage `json:"chat"`
}

// create handles POST /guides  { "make", "model", "year", "question" }
func (h *GuideHandler) create(c *fiber.Ctx) error {
	var req models.GuideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	g, err := h.svc.CreateGuide(c.UserContext(), req.Vehicle(), req.Question)
	if err != nil {
		return err
	}

	return c.JSON(createGuideResponse{
		ID:        g.ID.Hex(),
		Vehicle:   g.Vehicle,
		Question:  g.Question,
		AIAnswer:  g.AIAnswer,
		CreatedAt: g.CreatedAt,
	})
}

// createStructured handles POST /guides/structured with the same body as create.
func (h *GuideHandler) createStructured(c *fiber.Ctx) error {
	var req models.GuideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	out, err := h.structured.Generate(c.UserContext(), req.Vehicle(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// get handles GET /guides/:id
func (h *GuideHandler) get(c *fiber.Ctx) error {
	g, err := h.svc.GetGuide(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(g)
}

// regenerate handles POST /guides/:id/regenerate
func (h *GuideHandler) regenerate(c *fiber.Ctx) error {
	g, err := h.svc.RegenerateGuide(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(regenerateResponse{AIAnswer: g.AIAnswer, Chat: g.Chat})
}

// related handles GET /guides/:id/related?limit=5
func (h *GuideHandler) related(c *fiber.Ctx) error {
	items, err := h.svc.RelatedGuides(c.UserContext(), c.Params("id"), c.QueryInt("limit", service.DefaultRelatedLimit))
	if err != nil {
		return err
	}
	return c.JSON(items)
}
