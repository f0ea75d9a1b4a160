package memory

import (
	"fmt"
	"testing"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()

	if got := repo.History("missing"); got != nil {
		t.Errorf("History() for unknown session = %v, want nil", got)
	}

	repo.Append("s1",
		llm.Message{Role: llm.RoleUser, Content: "こんにちは"},
		llm.Message{Role: llm.RoleAssistant, Content: "やあ"},
	)
	history := repo.History("s1")
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Content != "こんにちは" || history[1].Content != "やあ" {
		t.Errorf("unexpected history: %+v", history)
	}

	// Sessions are isolated.
	if got := repo.History("s2"); got != nil {
		t.Errorf("History() for other session = %v, want nil", got)
	}

	repo.Delete("s1")
	if got := repo.History("s1"); got != nil {
		t.Errorf("History() after delete = %v, want nil", got)
	}
}

func TestSessionRepositoryTrimsHistory(t *testing.T) {
	repo := NewSessionRepository()

	for i := 0; i < maxHistoryMessages+10; i++ {
		repo.Append("s1", llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	history := repo.History("s1")
	if len(history) != maxHistoryMessages {
		t.Fatalf("history length = %d, want %d", len(history), maxHistoryMessages)
	}
	// The oldest messages fall off; the latest stays.
	if got := history[len(history)-1].Content; got != fmt.Sprintf("m%d", maxHistoryMessages+9) {
		t.Errorf("last message = %q", got)
	}
	if got := history[0].Content; got != "m10" {
		t.Errorf("first message = %q, want m10", got)
	}
}
