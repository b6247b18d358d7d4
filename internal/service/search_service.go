package service

import (
	"context"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// List limits for the sidebar and for related guides.
const (
	DefaultSearchLimit  = 10
	MaxSearchLimit      = 30
	DefaultRelatedLimit = 5
	MaxRelatedLimit     = 10
)

// ListRecentGuides returns the newest guides first. limit <= 0 means the
// default; anything above MaxSearchLimit is capped.
func (s *guideService) ListRecentGuides(ctx context.Context, limit int) ([]models.GuideSummary, error) {
	items, err := s.repo.Recent(ctx, clampLimit(limit, DefaultSearchLimit, MaxSearchLimit))
	if err != nil {
		return nil, apperr.E(apperr.CodeStore, "GuideService.ListRecentGuides", "Failed to fetch searches.", err)
	}
	if items == nil {
		items = []models.GuideSummary{}
	}
	return items, nil
}

// RelatedGuides runs a vector search with the guide's stored question
// embedding. Without an embedder, or for guides stored before embeddings
// were enabled, the result is empty.
func (s *guideService) RelatedGuides(ctx context.Context, id string, limit int) ([]models.GuideSummary, error) {
	const op = "GuideService.RelatedGuides"
	const failMsg = "Failed to fetch related guides."

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(op, failMsg, err)
	}
	if s.embedder == nil || len(g.Embedding) == 0 {
		return []models.GuideSummary{}, nil
	}

	items, err := s.repo.Similar(ctx, g.Embedding, g.ID, clampLimit(limit, DefaultRelatedLimit, MaxRelatedLimit))
	if err != nil {
		return nil, apperr.E(apperr.CodeStore, op, failMsg, err)
	}
	s.log.WithField("guide_id", id).WithField("results", len(items)).Debug("related guides")
	if items == nil {
		items = []models.GuideSummary{}
	}
	return items, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
