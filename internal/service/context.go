package service

import (
	"context"
	"fmt"

	"github.com/bes-dev/flowento/internal/adapter/llm"
	"github.com/bes-dev/flowento/internal/domain"
)

// ContextWindow is the number of stored turns included in a prompt. The
// stored history itself grows without bound; the cap applies only to what is
// sent to the model.
const ContextWindow = 5

// SystemPrompt is the fixed system instruction prepended to every prompt.
const SystemPrompt = "You are an AI assistant that helps run projects. " +
	"Your job is to help organize tasks and roadmaps and keep an eye on statuses. " +
	"Ask proactive questions and take initiative. " +
	"Keep answers short and to the point."

// BuildPrompt assembles the prompt for a new user message: the system
// instruction, up to ContextWindow most recent stored turns, then the new
// message.
func (s *Service) BuildPrompt(ctx context.Context, userID int64, message string) ([]llm.ChatMessage, error) {
	recent, err := s.store.RecentTurns(ctx, userID, ContextWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	messages := make([]llm.ChatMessage, 0, len(recent)+2)
	messages = append(messages, llm.ChatMessage{Role: domain.RoleSystem, Content: SystemPrompt})
	for _, turn := range recent {
		messages = append(messages, llm.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: domain.RoleUser, Content: message})
	return messages, nil
}

// CommitExchange appends a confirmed user/assistant exchange to the stored
// history. It is called only after a successful completion, so a failed
// remote call never leaves a partial turn behind.
func (s *Service) CommitExchange(ctx context.Context, userID int64, userMessage, assistantReply string) error {
	err := s.store.AppendTurns(ctx, userID,
		domain.Turn{Role: domain.RoleUser, Content: userMessage},
		domain.Turn{Role: domain.RoleAssistant, Content: assistantReply},
	)
	if err != nil {
		return fmt.Errorf("failed to append turns: %w", err)
	}
	return nil
}
