package service

import (
	"context"
	"fmt"

	"github.com/bes-dev/flowento/internal/domain"
)

// BoardResult describes the outcome of an embedded-app payload application.
type BoardResult struct {
	Action  string
	Applied bool
	Task    *domain.Task
	Name    string
	Status  string
}

// ApplyBoardPayload decodes one embedded kanban-app payload and applies it.
// The payload either moves a task (statusUpdate), updates an existing task
// (id + name present) or creates a new one (name only). A malformed payload
// yields domain.ErrMalformedPayload and no mutation.
func (s *Service) ApplyBoardPayload(ctx context.Context, userID int64, data []byte) (*BoardResult, error) {
	p, action, err := domain.DecodeBoardPayload(data)
	if err != nil {
		return nil, err
	}

	switch action {
	case domain.BoardActionStatusUpdate:
		ok, err := s.UpdateTaskStatus(ctx, userID, int(p.ProjectID), int(p.ID), p.Status)
		if err != nil {
			return nil, err
		}
		return &BoardResult{Action: action, Applied: ok, Status: p.Status}, nil

	case domain.BoardActionUpdateTask:
		status := p.Status
		if status == "" {
			status = string(domain.TaskStatusInProgress)
		}
		update := domain.TaskUpdate{
			Name:        &p.Name,
			Description: &p.Description,
			Status:      &status,
			Deadline:    &p.Deadline,
		}
		ok, err := s.UpdateTask(ctx, userID, int(p.ProjectID), int(p.ID), update)
		if err != nil {
			return nil, err
		}
		return &BoardResult{Action: action, Applied: ok, Name: p.Name, Status: status}, nil

	case domain.BoardActionCreateTask:
		task, err := s.AddTask(ctx, userID, int(p.ProjectID), p.Name, p.Description, p.Deadline)
		if err != nil {
			return nil, err
		}
		return &BoardResult{Action: action, Applied: task != nil, Task: task, Name: p.Name}, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrMalformedPayload, action)
	}
}
