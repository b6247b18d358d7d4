package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
	"github.com/ahmednasr/autoguide-ai/server/internal/cache"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
	"github.com/ahmednasr/autoguide-ai/server/internal/repository"
)

// Seeded assistant messages and fallbacks for empty provider output.
const (
	GreetingCreated     = "Ask anything about the guide (tools, steps, safety, parts, etc.)."
	GreetingRegenerated = "New guide generated. Ask follow-up questions about this updated answer."
	EmptyAnswer         = "No answer returned. Please try again."
)

// ---- Repository layer contracts -------------------------------------------

// GuideRepository handles persistence of AI‑generated guides & chat history.
type GuideRepository interface {
	Create(ctx context.Context, g *models.Guide) error
	FindByID(ctx context.Context, id string) (models.Guide, error)
	Recent(ctx context.Context, limit int) ([]models.GuideSummary, error)
	AppendChat(ctx context.Context, id primitive.ObjectID, version int64, msgs ...models.ChatMessage) (models.Guide, error)
	ResetAnswer(ctx context.Context, id primitive.ObjectID, version int64, answer string, chat []models.ChatMessage) (models.Guide, error)
	SetEmbedding(ctx context.Context, id primitive.ObjectID, vec []float32) error
	Similar(ctx context.Context, queryVec []float32, excludeID primitive.ObjectID, k int) ([]models.GuideSummary, error)
}

// ---- Service implementation ------------------------------------------------

// GuideService generates, stores and lists AI maintenance guides.
type GuideService interface {
	CreateGuide(ctx context.Context, v models.Vehicle, question string) (models.Guide, error)
	RegenerateGuide(ctx context.Context, id string) (models.Guide, error)
	GetGuide(ctx context.Context, id string) (models.Guide, error)
	ListRecentGuides(ctx context.Context, limit int) ([]models.GuideSummary, error)
	RelatedGuides(ctx context.Context, id string, limit int) ([]models.GuideSummary, error)
}

// GuideServiceConfig holds the tunables of the guide service.
type GuideServiceConfig struct {
	LLMTimeout time.Duration
	CacheTTL   time.Duration
}

type guideService struct {
	repo     GuideRepository
	llm      LLM
	embedder EmbeddingClient // nil disables related guides
	cache    cache.Cache
	log      logrus.FieldLogger
	cfg      GuideServiceConfig
}

// NewGuideService wires dependencies. embedder may be nil and c defaults to
// a no-op cache.
func NewGuideService(
	repo GuideRepository,
	llm LLM,
	embedder EmbeddingClient,
	c cache.Cache,
	log logrus.FieldLogger,
	cfg GuideServiceConfig,
) GuideService {
	if c == nil {
		c = cache.Noop{}
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 60 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &guideService{
		repo:     repo,
		llm:      llm,
		embedder: embedder,
		cache:    c,
		log:      log.WithField("svc", "guide"),
		cfg:      cfg,
	}
}

// CreateGuide asks the LLM for a sectioned guide and stores it with a
// greeting as the first chat message.
func (s *guideService) CreateGuide(ctx context.Context, v models.Vehicle, question string) (models.Guide, error) {
	const op = "GuideService.CreateGuide"
	const failMsg = "Failed to generate guide."

	v, question, err := validateGuideInput(op, v, question)
	if err != nil {
		return models.Guide{}, err
	}

	answer, err := s.generate(ctx, buildGuidePrompt(v, question))
	if err != nil {
		return models.Guide{}, apperr.E(apperr.CodeUpstream, op, failMsg, err)
	}
	if answer == "" {
		answer = EmptyAnswer
	}

	now := time.Now().UTC()
	g := models.Guide{
		Vehicle:  v,
		Question: question,
		AIAnswer: answer,
		Chat: []models.ChatMessage{
			{Role: models.RoleAssistant, Text: GreetingCreated, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &g); err != nil {
		return models.Guide{}, apperr.E(apperr.CodeStore, op, failMsg, err)
	}
	s.log.WithField("guide_id", g.ID.Hex()).Info("guide created")

	s.embed(ctx, &g)
	return g, nil
}

// embed stores the question embedding for related-guide lookups. Failures
// only cost the guide its place in related results.
func (s *guideService) embed(ctx context.Context, g *models.Guide) {
	if s.embedder == nil {
		return
	}
	log := s.log.WithField("guide_id", g.ID.Hex())

	vec, err := s.embedder.Embed(ctx, embeddingText(g.Vehicle, g.Question))
	if err != nil {
		log.WithError(err).Warn("embed guide question")
		return
	}
	if err := s.repo.SetEmbedding(ctx, g.ID, vec); err != nil {
		log.WithError(err).Warn("store guide embedding")
		return
	}
	g.Embedding = vec
}

func embeddingText(v models.Vehicle, question string) string {
	return fmt.Sprintf("%s: %s", v, question)
}

// RegenerateGuide re-asks the LLM for the stored vehicle and question and
// resets the chat. An empty answer keeps the previous one.
func (s *guideService) RegenerateGuide(ctx context.Context, id string) (models.Guide, error) {
	const op = "GuideService.RegenerateGuide"
	const failMsg = "Failed to regenerate guide."

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Guide{}, repoErr(op, failMsg, err)
	}

	answer, err := s.generate(ctx, buildGuidePrompt(g.Vehicle, g.Question))
	if err != nil {
		return models.Guide{}, apperr.E(apperr.CodeUpstream, op, failMsg, err)
	}
	if answer == "" {
		answer = g.AIAnswer
	}

	chat := []models.ChatMessage{
		{Role: models.RoleAssistant, Text: GreetingRegenerated, CreatedAt: time.Now().UTC()},
	}
	updated, err := s.repo.ResetAnswer(ctx, g.ID, g.Version, answer, chat)
	if err != nil {
		return models.Guide{}, repoErr(op, failMsg, err)
	}
	s.invalidate(ctx, g.ID)
	s.log.WithField("guide_id", g.ID.Hex()).Info("guide regenerated")
	return updated, nil
}

// GetGuide returns a guide by id, reading through the cache.
func (s *guideService) GetGuide(ctx context.Context, id string) (models.Guide, error) {
	const op = "GuideService.GetGuide"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Guide{}, repoErr(op, "Failed to fetch guide.", repository.ErrNotFound)
	}
	key := cache.GuideKey(oid)
	var cached models.Guide
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).Warn("cache read")
	}
	if hit {
		return cached, nil
	}

	g, err := s.repo.FindByID(ctx, oid.Hex())
	if err != nil {
		return models.Guide{}, repoErr(op, "Failed to fetch guide.", err)
	}
	if err := s.cache.SetJSON(ctx, key, g, s.cfg.CacheTTL); err != nil {
		s.log.WithError(err).Warn("cache write")
	}
	return g, nil
}

func (s *guideService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Del(ctx, cache.GuideKey(id)); err != nil {
		s.log.WithError(err).WithField("guide_id", id.Hex()).Warn("cache invalidate")
	}
}

// generate runs one LLM call bounded by the configured timeout and trims
// the answer.
func (s *guideService) generate(ctx context.Context, prompt string) (string, error) {
	return callLLM(ctx, s.cfg.LLMTimeout, s.llm.GenerateResponse, prompt)
}

func callLLM(ctx context.Context, timeout time.Duration, fn func(context.Context, string) (string, error), prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	text, err := fn(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// repoErr maps repository sentinels onto apperr codes.
func repoErr(op, failMsg string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.E(apperr.CodeNotFound, op, MsgGuideNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		return apperr.E(apperr.CodeConflict, op, MsgGuideConflict, err)
	default:
		return apperr.E(apperr.CodeStore, op, failMsg, err)
	}
}
