package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
	"github.com/ahmednasr/autoguide-ai/server/internal/normalize"
)

// CatalogRepository reads the service_parts reference data.
type CatalogRepository interface {
	FindByServices(ctx context.Context, services []string) ([]models.ServiceCatalogEntry, error)
}

// QueryLogRepository stores raw provider output.
type QueryLogRepository interface {
	Insert(ctx context.Context, q models.QueryLog) error
}

// StructuredGuideService produces fixed-shape JSON guides.
type StructuredGuideService interface {
	Generate(ctx context.Context, v models.Vehicle, question string) (models.StructuredGuide, error)
}

type structuredGuideService struct {
	catalog    CatalogRepository
	queryLogs  QueryLogRepository
	llm        LLM
	log        logrus.FieldLogger
	llmTimeout time.Duration
}

func NewStructuredGuideService(
	catalog CatalogRepository,
	queryLogs QueryLogRepository,
	llm LLM,
	log logrus.FieldLogger,
	llmTimeout time.Duration,
) StructuredGuideService {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &structuredGuideService{
		catalog:    catalog,
		queryLogs:  queryLogs,
		llm:        llm,
		log:        log.WithField("svc", "structured"),
		llmTimeout: llmTimeout,
	}
}

// Generate grounds the prompt on matching catalog entries, asks the provider
// for JSON and normalizes whatever comes back.
func (s *structuredGuideService) Generate(ctx context.Context, v models.Vehicle, question string) (models.StructuredGuide, error) {
	const op = "StructuredGuideService.Generate"
	const failMsg = "Failed to generate guide."

	v, question, err := validateGuideInput(op, v, question)
	if err != nil {
		return models.StructuredGuide{}, err
	}

	entries := s.lookupCatalog(ctx, MatchServices(question))
	sources := make([]string, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, e.Service)
	}

	raw, err := callLLM(ctx, s.llmTimeout, s.llm.GenerateJSON, buildStructuredPrompt(v, question, entries))
	if err != nil {
		return models.StructuredGuide{}, apperr.E(apperr.CodeUpstream, op, failMsg, err)
	}

	if err := s.queryLogs.Insert(ctx, models.QueryLog{
		Vehicle:     v,
		Question:    question,
		RawText:     raw,
		SourcesUsed: sources,
	}); err != nil {
		s.log.WithError(err).Warn("query log insert")
	}

	value, err := normalize.Decode(raw)
	if err != nil {
		s.log.WithError(err).Warn("provider returned unparseable JSON")
		return models.StructuredGuide{}, apperr.E(apperr.CodeUpstream, op, failMsg, err)
	}

	out := normalize.Normalize(value, question)
	out.SourcesUsed = appendMissing(out.SourcesUsed, sources...)
	return out, nil
}

// lookupCatalog loads the matched entries. A failing catalog only costs the
// prompt its reference data.
func (s *structuredGuideService) lookupCatalog(ctx context.Context, services []string) []models.ServiceCatalogEntry {
	if len(services) == 0 {
		return nil
	}
	entries, err := s.catalog.FindByServices(ctx, services)
	if err != nil {
		s.log.WithError(err).WithField("services", services).Warn("catalog lookup")
		return nil
	}
	return entries
}

func appendMissing(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		seen[s] = true
	}
	for _, it := range items {
		if !seen[it] {
			list = append(list, it)
			seen[it] = true
		}
	}
	return list
}
