package service

import (
	"context"
	"strings"

	"github.com/y-ymmt/ikitaitoko-bot/internal/constant"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
	"github.com/y-ymmt/ikitaitoko-bot/internal/repository/memory"
	"github.com/y-ymmt/ikitaitoko-bot/internal/tools"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm"
)

const sessionKeyPrefix = "ikitaitoko_bot_session_"

// IAgentService runs one user instruction through the LLM agent loop and
// returns the reply text. Invoke never fails: every error path degrades to a
// fixed apology message so the consumer always has something to push.
type IAgentService interface {
	Invoke(ctx context.Context, message, sessionID, actorID string) string
}

type agentService struct {
	provider llm.Provider
	toolbox  *tools.Toolbox
	sessions *memory.SessionRepository
	logger   logger.ILogger
}

func NewAgentService(provider llm.Provider, toolbox *tools.Toolbox, sessions *memory.SessionRepository, log logger.ILogger) IAgentService {
	return &agentService{
		provider: provider,
		toolbox:  toolbox,
		sessions: sessions,
		logger:   log,
	}
}

func (s *agentService) Invoke(ctx context.Context, message, sessionID, actorID string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent", "panic during agent invocation", map[string]interface{}{
				"session_id": sessionID,
				"panic":      r,
			})
			reply = constant.ApologyMessage
		}
	}()

	key := sessionKeyPrefix + sessionID
	userMessage := llm.Message{Role: llm.RoleUser, Content: message}
	conversation := append(s.sessions.History(key), userMessage)

	reply, err := s.provider.ChatWithTools(ctx, constant.AgentSystemPrompt, conversation, s.toolbox.Definitions(), s.toolbox.Execute)
	if err != nil {
		s.logger.Error("agent", "agent invocation failed", map[string]interface{}{
			"session_id": sessionID,
			"actor_id":   actorID,
			"error":      err.Error(),
		})
		return constant.ApologyMessage
	}
	if strings.TrimSpace(reply) == "" {
		return constant.ApologyMessage
	}

	s.sessions.Append(key, userMessage, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply
}
