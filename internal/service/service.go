// Package service implements the assistant's application logic on top of the
// store, the LLM client and the board policy.
package service

import (
	"errors"

	"github.com/bes-dev/flowento/internal/adapter/llm"
	"github.com/bes-dev/flowento/internal/config"
	"github.com/bes-dev/flowento/internal/store"
	"github.com/bes-dev/flowento/policy"
)

// ErrBlocked is returned when the board policy rejects a mutation.
var ErrBlocked = errors.New("blocked by board policy")

type Service struct {
	store        store.Store
	llmClient    llm.LLMClient
	policyEngine *policy.Engine
	config       *config.Config
}

func New(store store.Store, llmClient llm.LLMClient, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		llmClient:    llmClient,
		policyEngine: policyEngine,
		config:       cfg,
	}
}

// Store exposes the backing store, mainly for tests.
func (s *Service) Store() store.Store {
	return s.store
}
