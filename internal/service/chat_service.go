package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
	"github.com/ahmednasr/autoguide-ai/server/internal/cache"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// EmptyReply is stored when the provider returns no text for a follow-up.
const EmptyReply = "I couldn't generate a reply. Try again."

// ChatService answers follow-up questions against a stored guide.
type ChatService interface {
	// PostFollowUp appends the user's message and the assistant's reply to
	// the guide's chat and returns the reply with the full transcript.
	PostFollowUp(ctx context.Context, guideID, message string) (models.ChatResponse, error)
}

type chatService struct {
	repo       GuideRepository
	llm        LLM
	cache      cache.Cache
	log        logrus.FieldLogger
	llmTimeout time.Duration
}

// NewChatService wires dependencies and returns ChatService.
func NewChatService(repo GuideRepository, llm LLM, c cache.Cache, log logrus.FieldLogger, llmTimeout time.Duration) ChatService {
	if c == nil {
		c = cache.Noop{}
	}
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &chatService{
		repo:       repo,
		llm:        llm,
		cache:      c,
		log:        log.WithField("svc", "chat"),
		llmTimeout: llmTimeout,
	}
}

// PostFollowUp builds the prompt from the guide, the last ChatHistoryWindow
// messages (the new one included) and the message itself. Both new messages
// are written in a single update guarded by the guide's version, so a
// concurrent follow-up on the same guide fails with CONFLICT instead of
// dropping a message.
func (s *chatService) PostFollowUp(ctx context.Context, guideID, message string) (models.ChatResponse, error) {
	const op = "ChatService.PostFollowUp"
	const failMsg = "Failed to chat."

	guideID, message, err := validateChatInput(op, guideID, message)
	if err != nil {
		return models.ChatResponse{}, err
	}

	g, err := s.repo.FindByID(ctx, guideID)
	if err != nil {
		return models.ChatResponse{}, repoErr(op, failMsg, err)
	}

	userMsg := models.ChatMessage{Role: models.RoleUser, Text: message, CreatedAt: time.Now().UTC()}
	chat := make([]models.ChatMessage, 0, len(g.Chat)+1)
	chat = append(chat, g.Chat...)
	chat = append(chat, userMsg)

	reply, err := callLLM(ctx, s.llmTimeout, s.llm.GenerateResponse, buildChatPrompt(g, chat, message))
	if err != nil {
		return models.ChatResponse{}, apperr.E(apperr.CodeUpstream, op, failMsg, err)
	}
	if reply == "" {
		reply = EmptyReply
	}
	assistantMsg := models.ChatMessage{Role: models.RoleAssistant, Text: reply, CreatedAt: time.Now().UTC()}

	updated, err := s.repo.AppendChat(ctx, g.ID, g.Version, userMsg, assistantMsg)
	if err != nil {
		return models.ChatResponse{}, repoErr(op, failMsg, err)
	}
	if err := s.cache.Del(ctx, cache.GuideKey(g.ID)); err != nil {
		s.log.WithError(err).WithField("guide_id", g.ID.Hex()).Warn("cache invalidate")
	}

	s.log.WithFields(logrus.Fields{"guide_id": g.ID.Hex(), "messages": len(updated.Chat)}).Info("follow-up answered")
	return models.ChatResponse{Reply: reply, Chat: updated.Chat}, nil
}
