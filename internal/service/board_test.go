package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bes-dev/flowento/internal/domain"
)

func TestApplyBoardPayloadStatusUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubLLM{})

	if _, err := svc.AddProject(ctx, 1, "Site", ""); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if _, err := svc.AddTask(ctx, 1, 1, "Design", "", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	result, err := svc.ApplyBoardPayload(ctx, 1, []byte(`{"action":"statusUpdate","projectId":1,"id":1,"status":"done"}`))
	if err != nil {
		t.Fatalf("ApplyBoardPayload failed: %v", err)
	}
	if !result.Applied || result.Action != domain.BoardActionStatusUpdate {
		t.Fatalf("unexpected result: %+v", result)
	}

	p, err := svc.GetProject(ctx, 1, 1)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p.Tasks[0].Status != "done" {
		t.Fatalf("status not applied: %+v", p.Tasks[0])
	}
}

func TestApplyBoardPayloadCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubLLM{})

	if _, err := svc.AddProject(ctx, 1, "Site", ""); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	result, err := svc.ApplyBoardPayload(ctx, 1, []byte(`{"projectId":1,"name":"Design","description":"hero section"}`))
	if err != nil {
		t.Fatalf("ApplyBoardPayload failed: %v", err)
	}
	if !result.Applied || result.Task == nil || result.Task.ID != 1 {
		t.Fatalf("unexpected create result: %+v", result)
	}

	result, err = svc.ApplyBoardPayload(ctx, 1, []byte(`{"projectId":1,"id":1,"name":"Design v2","deadline":"31.12.2025"}`))
	if err != nil {
		t.Fatalf("ApplyBoardPayload failed: %v", err)
	}
	if !result.Applied || result.Action != domain.BoardActionUpdateTask {
		t.Fatalf("unexpected update result: %+v", result)
	}

	p, _ := svc.GetProject(ctx, 1, 1)
	task := p.Tasks[0]
	if task.Name != "Design v2" || task.Deadline != "31.12.2025" {
		t.Fatalf("update not applied: %+v", task)
	}
	// An update without an explicit status defaults to in progress.
	if task.Status != string(domain.TaskStatusInProgress) {
		t.Fatalf("expected in progress, got %q", task.Status)
	}
}

func TestApplyBoardPayloadMalformedNoMutation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubLLM{})

	if _, err := svc.AddProject(ctx, 1, "Site", ""); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if _, err := svc.AddTask(ctx, 1, 1, "Design", "", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// Missing projectId.
	_, err := svc.ApplyBoardPayload(ctx, 1, []byte(`{"action":"statusUpdate","id":1,"status":"done"}`))
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}

	p, _ := svc.GetProject(ctx, 1, 1)
	if p.Tasks[0].Status != string(domain.TaskStatusCreated) {
		t.Fatalf("malformed payload mutated state: %+v", p.Tasks[0])
	}
}

func TestUpdateTaskStatusBlockedByPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubLLM{})

	if _, err := svc.AddProject(ctx, 1, "Site", ""); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if _, err := svc.AddTask(ctx, 1, 1, "Design", "", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	_, err := svc.UpdateTaskStatus(ctx, 1, 1, 1, "   ")
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked for empty status, got %v", err)
	}

	// Free-text labels stay allowed.
	ok, err := svc.UpdateTaskStatus(ctx, 1, 1, 1, "waiting on review")
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected success")
	}
}
