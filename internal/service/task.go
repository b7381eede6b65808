package service

import (
	"context"
	"fmt"

	"github.com/bes-dev/flowento/internal/domain"
	"github.com/bes-dev/flowento/policy"
)

// AddTask appends a new task to a project. Returns (nil, nil) when the
// project does not exist.
func (s *Service) AddTask(ctx context.Context, userID int64, projectID int, name, description, deadline string) (*domain.Task, error) {
	task, err := s.store.AddTask(ctx, userID, projectID, name, description, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	return task, nil
}

// UpdateTaskStatus moves a task to a new status. The label is free text; the
// board policy only rejects obviously broken moves (e.g. an empty label).
// Returns false when the project or task is unknown.
func (s *Service) UpdateTaskStatus(ctx context.Context, userID int64, projectID, taskID int, status string) (bool, error) {
	if err := s.checkPolicy(ctx, domain.BoardActionStatusUpdate, userID, status); err != nil {
		return false, err
	}

	ok, err := s.store.UpdateTaskStatus(ctx, userID, projectID, taskID, status)
	if err != nil {
		return false, fmt.Errorf("failed to update task status: %w", err)
	}
	return ok, nil
}

// UpdateTask applies a partial update to a task. Unset fields keep their
// prior values. Returns false when the project or task is unknown.
func (s *Service) UpdateTask(ctx context.Context, userID int64, projectID, taskID int, update domain.TaskUpdate) (bool, error) {
	if update.Status != nil {
		if err := s.checkPolicy(ctx, domain.BoardActionUpdateTask, userID, *update.Status); err != nil {
			return false, err
		}
	}

	ok, err := s.store.UpdateTask(ctx, userID, projectID, taskID, update)
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	return ok, nil
}

// SetTaskDeadline sets the deadline of a task.
func (s *Service) SetTaskDeadline(ctx context.Context, userID int64, projectID, taskID int, deadline string) (bool, error) {
	ok, err := s.store.SetTaskDeadline(ctx, userID, projectID, taskID, deadline)
	if err != nil {
		return false, fmt.Errorf("failed to set deadline: %w", err)
	}
	return ok, nil
}

func (s *Service) checkPolicy(ctx context.Context, action string, userID int64, status string) error {
	if s.policyEngine == nil {
		return nil
	}
	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		Action: action,
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate board policy: %w", err)
	}
	if decision == policy.DecisionBlock {
		return ErrBlocked
	}
	return nil
}
