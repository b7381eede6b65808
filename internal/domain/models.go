// Package domain defines the core domain models for the assistant.
package domain

import "time"

// Project is a user-owned container for tasks.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	Tasks       []Task    `json:"tasks"`
}

// Task is a project-owned unit of work.
type Task struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Deadline    string    `json:"deadline,omitempty"`
	Status      string    `json:"status"`
}

// Turn is one exchange unit in a user's conversation history.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskUpdate is a partial update of a task. Nil fields are left untouched.
type TaskUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// DoneTasks counts the tasks of a project whose status is done-equivalent.
func (p *Project) DoneTasks() int {
	n := 0
	for _, t := range p.Tasks {
		if IsDone(t.Status) {
			n++
		}
	}
	return n
}

// RemainingTasks counts the tasks of a project that are not done yet.
func (p *Project) RemainingTasks() int {
	return len(p.Tasks) - p.DoneTasks()
}
