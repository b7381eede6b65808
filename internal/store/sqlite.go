package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bes-dev/flowento/internal/domain"
)

// SQLiteStore implements Store using SQLite. It is the opt-in persistent
// backend; the default deployment keeps everything in process memory.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			user_id INTEGER NOT NULL,
			project_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			status TEXT NOT NULL,
			PRIMARY KEY (user_id, project_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			user_id INTEGER NOT NULL,
			project_id INTEGER NOT NULL,
			task_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deadline TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			PRIMARY KEY (user_id, project_id, task_id),
			FOREIGN KEY (user_id, project_id) REFERENCES projects(user_id, project_id)
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			turn_id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_user ON turns(user_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddProject creates a new project. The id is assigned inside one write
// transaction, so concurrent creators for the same user serialize.
func (s *SQLiteStore) AddProject(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var projectID int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(project_id), 0) + 1 FROM projects WHERE user_id = ?`,
		userID).Scan(&projectID); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          projectID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Status:      domain.ProjectStatusInProgress,
		Tasks:       []domain.Task{},
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO projects (user_id, project_id, name, description, created_at, status) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, project.ID, project.Name, project.Description, project.CreatedAt, project.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjects returns the user's projects in insertion order.
func (s *SQLiteStore) GetProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, name, description, created_at, status FROM projects WHERE user_id = ? ORDER BY project_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.Status); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		tasks, err := s.getTasks(ctx, userID, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}
	return projects, nil
}

// GetProject retrieves a project by id, or (nil, nil) when absent.
func (s *SQLiteStore) GetProject(ctx context.Context, userID int64, projectID int) (*domain.Project, error) {
	var p domain.Project
	err := s.db.QueryRowContext(ctx,
		`SELECT project_id, name, description, created_at, status FROM projects WHERE user_id = ? AND project_id = ?`,
		userID, projectID).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tasks, err := s.getTasks(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks
	return &p, nil
}

func (s *SQLiteStore) getTasks(ctx context.Context, userID int64, projectID int) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, name, description, created_at, deadline, status FROM tasks WHERE user_id = ? AND project_id = ? ORDER BY task_id`,
		userID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.Deadline, &t.Status); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// AddTask appends a new task to a project, or returns (nil, nil) when the
// project does not exist.
func (s *SQLiteStore) AddTask(ctx context.Context, userID int64, projectID int, name, description, deadline string) (*domain.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM projects WHERE user_id = ? AND project_id = ?`,
		userID, projectID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var taskID int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(task_id), 0) + 1 FROM tasks WHERE user_id = ? AND project_id = ?`,
		userID, projectID).Scan(&taskID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          taskID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Deadline:    deadline,
		Status:      string(domain.TaskStatusCreated),
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (user_id, project_id, task_id, name, description, created_at, deadline, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, projectID, task.ID, task.Name, task.Description, task.CreatedAt, task.Deadline, task.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskStatus sets the status of a task.
func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, userID int64, projectID, taskID int, status string) (bool, error) {
	st := status
	return s.UpdateTask(ctx, userID, projectID, taskID, domain.TaskUpdate{Status: &st})
}

// UpdateTask applies the set fields of update, leaving nil fields untouched.
func (s *SQLiteStore) UpdateTask(ctx context.Context, userID int64, projectID, taskID int, update domain.TaskUpdate) (bool, error) {
	set := ""
	args := []interface{}{}
	add := func(col string, val string) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Deadline != nil {
		add("deadline", *update.Deadline)
	}
	if set == "" {
		// Nothing to change; report whether the task exists.
		var one int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM tasks WHERE user_id = ? AND project_id = ? AND task_id = ?`,
			userID, projectID, taskID).Scan(&one)
		if err == sql.ErrNoRows {
			return false, nil
		}
		return err == nil, err
	}

	args = append(args, userID, projectID, taskID)
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET `+set+` WHERE user_id = ? AND project_id = ? AND task_id = ?`, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetTaskDeadline sets the deadline of a task.
func (s *SQLiteStore) SetTaskDeadline(ctx context.Context, userID int64, projectID, taskID int, deadline string) (bool, error) {
	d := deadline
	return s.UpdateTask(ctx, userID, projectID, taskID, domain.TaskUpdate{Deadline: &d})
}

// AppendTurns appends conversation turns to the user's history.
func (s *SQLiteStore) AppendTurns(ctx context.Context, userID int64, turns ...domain.Turn) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM turns WHERE user_id = ?`,
		userID).Scan(&seq); err != nil {
		return err
	}

	for _, t := range turns {
		seq++
		if t.TurnID == "" {
			t.TurnID = uuid.New().String()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO turns (turn_id, user_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			t.TurnID, userID, seq, t.Role, t.Content, t.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentTurns returns up to limit most recent turns, oldest first.
func (s *SQLiteStore) RecentTurns(ctx context.Context, userID int64, limit int) ([]domain.Turn, error) {
	query := `SELECT turn_id, role, content, created_at FROM turns WHERE user_id = ? ORDER BY seq DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.TurnID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// HistoryLen returns the total number of stored turns for the user.
func (s *SQLiteStore) HistoryLen(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
