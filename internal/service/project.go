package service

import (
	"context"
	"fmt"

	"github.com/bes-dev/flowento/internal/domain"
)

// AddProject creates a new project for the user.
func (s *Service) AddProject(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	project, err := s.store.AddProject(ctx, userID, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}
	return project, nil
}

// GetProjects returns the user's projects in insertion order.
func (s *Service) GetProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	projects, err := s.store.GetProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by id. Returns (nil, nil) when the project
// does not exist.
func (s *Service) GetProject(ctx context.Context, userID int64, projectID int) (*domain.Project, error) {
	project, err := s.store.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}
