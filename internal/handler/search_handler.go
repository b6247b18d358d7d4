package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

// SearchHandler serves the recent-searches sidebar.
type SearchHandler struct {
	svc service.GuideService
}

// NewSearchHandler returns a handler instance.
func NewSearchHandler(svc service.GuideService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Register mounts GET /searches on the given router group.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Get("/searches", h.searches)
}

// searches handles GET /searches?limit=10. A missing or non-numeric limit
// falls back to the default; the service caps it.
func (h *SearchHandler) searches(c *fiber.Ctx) error {
	items, err := h.svc.ListRecentGuides(c.UserContext(), c.QueryInt("limit", service.DefaultSearchLimit))
	if err != nil {
		return err
	}
	return c.JSON(items)
}
