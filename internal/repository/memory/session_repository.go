package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm"
)

// maxHistoryMessages caps the rolling conversation window kept per session.
const maxHistoryMessages = 20

// SessionRepository keeps the recent conversation history per session key in
// memory. Sessions expire after an hour of inactivity.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// History returns the stored conversation for a session, oldest first.
func (r *SessionRepository) History(sessionID string) []llm.Message {
	if x, found := r.cache.Get(sessionID); found {
		return x.([]llm.Message)
	}
	return nil
}

// Append adds messages to a session's history, trimming to the most recent
// maxHistoryMessages, and refreshes the session TTL.
func (r *SessionRepository) Append(sessionID string, messages ...llm.Message) {
	history := append(r.History(sessionID), messages...)
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	r.cache.Set(sessionID, history, cache.DefaultExpiration)
}

// Delete discards a session's history.
func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
