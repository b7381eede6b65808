package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bes-dev/flowento/internal/adapter/llm"
)

// Apology is the fixed reply returned to the user when the remote completion
// call fails for any reason.
const Apology = "Sorry, something went wrong while handling your request. Please try again later."

// Generation parameters for assistant replies.
const maxReplyTokens = 500

var replyTemperature = 0.7

// GenerateReply produces an assistant reply for a free-text user message.
// One attempt against the completion endpoint, no retry. On success both
// turns are appended to the stored history; on any failure the history is
// left untouched and the fixed apology is returned.
func (s *Service) GenerateReply(ctx context.Context, userID int64, message string) string {
	requestID := "llm_" + uuid.New().String()[:8]
	startTime := time.Now()

	messages, err := s.BuildPrompt(ctx, userID, message)
	if err != nil {
		log.Printf("ERROR: [%s] failed to build prompt: %v", requestID, err)
		return Apology
	}

	maxTokens := maxReplyTokens
	temperature := replyTemperature
	resp, err := s.llmClient.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model:       s.config.OpenAIModel,
		Messages:    messages,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		log.Printf("ERROR: [%s] completion call failed after %dms: %v", requestID, time.Since(startTime).Milliseconds(), err)
		return Apology
	}

	reply, err := resp.ReplyText()
	if err != nil {
		log.Printf("ERROR: [%s] malformed completion response: %v", requestID, err)
		return Apology
	}

	if err := s.CommitExchange(ctx, userID, message, reply); err != nil {
		log.Printf("WARN: [%s] failed to store exchange: %v", requestID, err)
	}

	return s.appendCommandHint(ctx, userID, reply)
}

// appendCommandHint adds a bot-command hint when the assistant's reply talks
// about an action the bot has a command for.
func (s *Service) appendCommandHint(ctx context.Context, userID int64, reply string) string {
	lower := strings.ToLower(reply)

	switch {
	case strings.Contains(lower, "create a project") || strings.Contains(lower, "new project"):
		return reply + "\n\nYou can create a new project with:\n/new_project Project name"

	case strings.Contains(lower, "add a task") || strings.Contains(lower, "create a task"):
		projects, err := s.GetProjects(ctx, userID)
		if err != nil || len(projects) == 0 {
			return reply + "\n\nCreate a project first with:\n/new_project Project name"
		}
		return reply + "\n\nYou can add a task with:\n/add_task " + strconv.Itoa(projects[0].ID) + " Task name"

	case strings.Contains(lower, "kanban") || strings.Contains(lower, "board"):
		return reply + "\n\nYou can open the kanban board with:\n/kanban"
	}

	return reply
}
