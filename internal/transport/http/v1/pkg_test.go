package v1

import (
	"context"
	"testing"

	"github.com/bes-dev/flowento/internal/adapter/llm"
	"github.com/bes-dev/flowento/internal/config"
	"github.com/bes-dev/flowento/internal/service"
	"github.com/bes-dev/flowento/internal/store"
	"github.com/bes-dev/flowento/policy"
)

func newTestHandler(t *testing.T) (*Handler, *service.Service) {
	t.Helper()
	engine, err := policy.NewDefaultEngine(context.Background())
	if err != nil {
		t.Fatalf("NewDefaultEngine failed: %v", err)
	}
	cfg := &config.Config{OpenAIModel: "gpt-3.5-turbo"}
	svc := service.New(store.NewMemoryStore(), llm.NewMockClient(), engine, cfg)
	return NewHandler(svc), svc
}
