// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/bes-dev/flowento/internal/domain"
)

// Store defines the interface for data persistence. All records are
// partitioned by user id; a user never sees another user's projects or
// history. Lookups for an unknown user or id return (nil, nil) or false
// rather than an error.
type Store interface {
	// Project operations
	AddProject(ctx context.Context, userID int64, name, description string) (*domain.Project, error)
	GetProjects(ctx context.Context, userID int64) ([]domain.Project, error)
	GetProject(ctx context.Context, userID int64, projectID int) (*domain.Project, error)

	// Task operations
	AddTask(ctx context.Context, userID int64, projectID int, name, description, deadline string) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, userID int64, projectID, taskID int, status string) (bool, error)
	UpdateTask(ctx context.Context, userID int64, projectID, taskID int, update domain.TaskUpdate) (bool, error)
	SetTaskDeadline(ctx context.Context, userID int64, projectID, taskID int, deadline string) (bool, error)

	// Conversation history operations
	AppendTurns(ctx context.Context, userID int64, turns ...domain.Turn) error
	RecentTurns(ctx context.Context, userID int64, limit int) ([]domain.Turn, error)
	HistoryLen(ctx context.Context, userID int64) (int, error)

	// Lifecycle
	Close() error
}
