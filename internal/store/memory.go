package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bes-dev/flowento/internal/domain"
)

// MemoryStore implements Store with process-local memory. All data is lost on
// restart. Mutations are serialized per user, and ids come from monotonic
// per-scope counters, so concurrent writers for the same user cannot observe
// duplicate ids.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]*userRecord
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

type userRecord struct {
	mu            sync.Mutex
	projects      []domain.Project
	nextProjectID int
	nextTaskID    map[int]int
	history       []domain.Turn
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]*userRecord)}
}

// user returns the record for userID, creating it lazily.
func (s *MemoryStore) user(userID int64) *userRecord {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok = s.users[userID]; ok {
		return rec
	}
	rec = &userRecord{
		nextProjectID: 1,
		nextTaskID:    make(map[int]int),
	}
	s.users[userID] = rec
	return rec
}

// Close releases the store. No-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// AddProject appends a new project for the user.
func (s *MemoryStore) AddProject(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	rec := s.user(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	project := domain.Project{
		ID:          rec.nextProjectID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Status:      domain.ProjectStatusInProgress,
		Tasks:       []domain.Task{},
	}
	rec.nextProjectID++
	rec.nextTaskID[project.ID] = 1
	rec.projects = append(rec.projects, project)

	return copyProject(&project), nil
}

// GetProjects returns the user's projects in insertion order. Unknown users
// get an empty slice.
func (s *MemoryStore) GetProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return []domain.Project{}, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	projects := make([]domain.Project, 0, len(rec.projects))
	for i := range rec.projects {
		projects = append(projects, *copyProject(&rec.projects[i]))
	}
	return projects, nil
}

// GetProject retrieves a project by id, or (nil, nil) when absent.
func (s *MemoryStore) GetProject(ctx context.Context, userID int64, projectID int) (*domain.Project, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if p := rec.findProject(projectID); p != nil {
		return copyProject(p), nil
	}
	return nil, nil
}

// AddTask appends a new task to a project, or returns (nil, nil) when the
// project does not exist.
func (s *MemoryStore) AddTask(ctx context.Context, userID int64, projectID int, name, description, deadline string) (*domain.Task, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	project := rec.findProject(projectID)
	if project == nil {
		return nil, nil
	}

	task := domain.Task{
		ID:          rec.nextTaskID[projectID],
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Deadline:    deadline,
		Status:      string(domain.TaskStatusCreated),
	}
	rec.nextTaskID[projectID]++
	project.Tasks = append(project.Tasks, task)

	out := task
	return &out, nil
}

// UpdateTaskStatus sets the status of a task. Returns false when the project
// or task is unknown. The status label itself is not constrained here.
func (s *MemoryStore) UpdateTaskStatus(ctx context.Context, userID int64, projectID, taskID int, status string) (bool, error) {
	st := status
	return s.UpdateTask(ctx, userID, projectID, taskID, domain.TaskUpdate{Status: &st})
}

// UpdateTask applies the set fields of update, leaving nil fields untouched.
func (s *MemoryStore) UpdateTask(ctx context.Context, userID int64, projectID, taskID int, update domain.TaskUpdate) (bool, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	project := rec.findProject(projectID)
	if project == nil {
		return false, nil
	}

	for i := range project.Tasks {
		if project.Tasks[i].ID != taskID {
			continue
		}
		task := &project.Tasks[i]
		if update.Name != nil {
			task.Name = *update.Name
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		if update.Deadline != nil {
			task.Deadline = *update.Deadline
		}
		return true, nil
	}
	return false, nil
}

// SetTaskDeadline sets the deadline of a task.
func (s *MemoryStore) SetTaskDeadline(ctx context.Context, userID int64, projectID, taskID int, deadline string) (bool, error) {
	d := deadline
	return s.UpdateTask(ctx, userID, projectID, taskID, domain.TaskUpdate{Deadline: &d})
}

// AppendTurns appends conversation turns to the user's history. The stored
// history is unbounded; only the prompt window is capped.
func (s *MemoryStore) AppendTurns(ctx context.Context, userID int64, turns ...domain.Turn) error {
	rec := s.user(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for _, t := range turns {
		if t.TurnID == "" {
			t.TurnID = uuid.New().String()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		rec.history = append(rec.history, t)
	}
	return nil
}

// RecentTurns returns up to limit most recent turns, oldest first.
func (s *MemoryStore) RecentTurns(ctx context.Context, userID int64, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return []domain.Turn{}, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	start := 0
	if limit > 0 && len(rec.history) > limit {
		start = len(rec.history) - limit
	}
	turns := make([]domain.Turn, len(rec.history)-start)
	copy(turns, rec.history[start:])
	return turns, nil
}

// HistoryLen returns the total number of stored turns for the user.
func (s *MemoryStore) HistoryLen(ctx context.Context, userID int64) (int, error) {
	s.mu.RLock()
	rec, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.history), nil
}

// findProject returns a pointer into the record's project slice. Caller must
// hold rec.mu.
func (r *userRecord) findProject(projectID int) *domain.Project {
	for i := range r.projects {
		if r.projects[i].ID == projectID {
			return &r.projects[i]
		}
	}
	return nil
}

// copyProject returns a deep copy so callers cannot mutate stored state.
func copyProject(p *domain.Project) *domain.Project {
	out := *p
	out.Tasks = make([]domain.Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return &out
}
