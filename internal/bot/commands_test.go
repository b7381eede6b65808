package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/bes-dev/flowento/internal/adapter/llm"
	"github.com/bes-dev/flowento/internal/config"
	"github.com/bes-dev/flowento/internal/domain"
	"github.com/bes-dev/flowento/internal/service"
	"github.com/bes-dev/flowento/internal/store"
	"github.com/bes-dev/flowento/policy"
)

func newTestRouter(t *testing.T) (*Router, *service.Service) {
	t.Helper()
	engine, err := policy.NewDefaultEngine(context.Background())
	if err != nil {
		t.Fatalf("NewDefaultEngine failed: %v", err)
	}
	cfg := &config.Config{OpenAIModel: "gpt-3.5-turbo"}
	svc := service.New(store.NewMemoryStore(), llm.NewMockClient(), engine, cfg)
	return NewRouter(svc, "https://board.example.com/app"), svc
}

func TestNewProjectCommand(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)
	user := User{ID: 1, FirstName: "Ann"}

	reply := r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	if !strings.Contains(reply.Text, "Project 'Site' created!") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Project ID: 1") {
		t.Fatalf("expected id 1 in reply: %q", reply.Text)
	}

	// Proactive follow-up with quick-action buttons.
	if len(reply.Messages) != 1 || len(reply.Messages[0].Buttons) != 1 {
		t.Fatalf("expected follow-up with buttons: %+v", reply.Messages)
	}
	buttons := reply.Messages[0].Buttons[0]
	if buttons[0].CallbackData != "add_task_1" || buttons[1].CallbackData != "open_kanban_1" {
		t.Fatalf("unexpected buttons: %+v", buttons)
	}

	p, err := svc.GetProject(ctx, 1, 1)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p == nil || p.Status != domain.ProjectStatusInProgress || len(p.Tasks) != 0 {
		t.Fatalf("unexpected project state: %+v", p)
	}
}

func TestNewProjectCommandUsageHint(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)

	reply := r.HandleCommand(ctx, User{ID: 1}, "new_project", nil)
	if !strings.Contains(reply.Text, "/new_project") {
		t.Fatalf("expected usage hint: %q", reply.Text)
	}

	projects, _ := svc.GetProjects(ctx, 1)
	if len(projects) != 0 {
		t.Fatalf("usage error still created a project: %+v", projects)
	}
}

func TestAddTaskCommand(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)
	user := User{ID: 1}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	reply := r.HandleCommand(ctx, user, "add_task", []string{"1", "Design"})

	if !strings.Contains(reply.Text, "Task 'Design' added to project 'Site'!") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Task ID: 1") {
		t.Fatalf("expected task id 1: %q", reply.Text)
	}

	// Status quick-switch buttons carry the callback payload format.
	if len(reply.Buttons) != 2 {
		t.Fatalf("expected two button rows: %+v", reply.Buttons)
	}
	if reply.Buttons[0][0].CallbackData != "task_1_1_in progress" {
		t.Fatalf("unexpected callback payload: %q", reply.Buttons[0][0].CallbackData)
	}
	if reply.Buttons[0][1].CallbackData != "task_1_1_done" {
		t.Fatalf("unexpected callback payload: %q", reply.Buttons[0][1].CallbackData)
	}

	// Deadline suggestion follow-up.
	if len(reply.Messages) != 1 || !strings.Contains(reply.Messages[0].Text, "/set_deadline 1 1") {
		t.Fatalf("expected deadline follow-up: %+v", reply.Messages)
	}

	p, _ := svc.GetProject(ctx, 1, 1)
	if len(p.Tasks) != 1 || p.Tasks[0].Status != string(domain.TaskStatusCreated) {
		t.Fatalf("unexpected task state: %+v", p.Tasks)
	}
}

func TestAddTaskCommandBadArgs(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)

	reply := r.HandleCommand(ctx, User{ID: 1}, "add_task", []string{"one", "Design"})
	if !strings.Contains(reply.Text, "must be a number") {
		t.Fatalf("expected numeric-id hint: %q", reply.Text)
	}

	reply = r.HandleCommand(ctx, User{ID: 1}, "add_task", []string{"1"})
	if !strings.Contains(reply.Text, "/add_task") {
		t.Fatalf("expected usage hint: %q", reply.Text)
	}
}

func TestTasksCommandGroupsByStatus(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)
	user := User{ID: 1}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Design"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Build"})
	if _, err := svc.UpdateTaskStatus(ctx, 1, 1, 2, "done"); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	reply := r.HandleCommand(ctx, user, "tasks", []string{"1"})
	if !strings.Contains(reply.Text, "== created ==") || !strings.Contains(reply.Text, "== done ==") {
		t.Fatalf("expected status groups: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "• Design (ID: 1)") || !strings.Contains(reply.Text, "• Build (ID: 2)") {
		t.Fatalf("expected both tasks listed: %q", reply.Text)
	}
}

func TestMoveTaskCommand(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)
	user := User{ID: 1}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Design"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Build"})

	reply := r.HandleCommand(ctx, user, "move_task", []string{"1", "1", "done"})
	if !strings.Contains(reply.Text, "Task status changed to 'done'.") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}

	// Proactive nudge about the remaining task.
	if len(reply.Messages) != 1 || !strings.Contains(reply.Messages[0].Text, "1 unfinished tasks") {
		t.Fatalf("expected remaining-task nudge: %+v", reply.Messages)
	}

	p, _ := svc.GetProject(ctx, 1, 1)
	if p.Tasks[0].Status != "done" || p.Tasks[1].Status != string(domain.TaskStatusCreated) {
		t.Fatalf("unexpected task states: %+v", p.Tasks)
	}

	// Finishing the last task congratulates instead.
	reply = r.HandleCommand(ctx, user, "move_task", []string{"1", "2", "done"})
	if len(reply.Messages) != 1 || !strings.Contains(reply.Messages[0].Text, "Congratulations!") {
		t.Fatalf("expected congratulation: %+v", reply.Messages)
	}
}

func TestMoveTaskCommandNotFound(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)

	reply := r.HandleCommand(ctx, User{ID: 1}, "move_task", []string{"1", "2", "done"})
	if !strings.Contains(reply.Text, "Could not update") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestProjectCommandNotFound(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)

	reply := r.HandleCommand(ctx, User{ID: 1}, "project", []string{"99"})
	if !strings.Contains(reply.Text, "Project with ID 99 was not found") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}

	projects, _ := svc.GetProjects(ctx, 1)
	if len(projects) != 0 {
		t.Fatalf("lookup mutated state: %+v", projects)
	}
}

func TestProjectCommandDetails(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)
	user := User{ID: 1}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Design"})

	reply := r.HandleCommand(ctx, user, "project", []string{"1"})
	if !strings.Contains(reply.Text, "Project: Site (ID: 1)") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Total tasks: 1") || !strings.Contains(reply.Text, "- created: 1") {
		t.Fatalf("expected status counts: %q", reply.Text)
	}
}

func TestSetDeadlineCommand(t *testing.T) {
	ctx := context.Background()
	r, svc := newTestRouter(t)
	user := User{ID: 1}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	r.HandleCommand(ctx, user, "add_task", []string{"1", "Design"})

	reply := r.HandleCommand(ctx, user, "set_deadline", []string{"1", "1", "31.12.2025"})
	if !strings.Contains(reply.Text, "Task deadline set to 31.12.2025.") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}

	p, _ := svc.GetProject(ctx, 1, 1)
	if p.Tasks[0].Deadline != "31.12.2025" {
		t.Fatalf("deadline not applied: %+v", p.Tasks[0])
	}

	reply = r.HandleCommand(ctx, user, "set_deadline", []string{"1", "9", "31.12.2025"})
	if !strings.Contains(reply.Text, "Task with ID 9 was not found") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestKanbanCommand(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)
	user := User{ID: 1}

	reply := r.HandleCommand(ctx, user, "kanban", nil)
	if !strings.Contains(reply.Text, "/new_project") {
		t.Fatalf("expected create-project hint: %q", reply.Text)
	}

	r.HandleCommand(ctx, user, "new_project", []string{"Site"})
	reply = r.HandleCommand(ctx, user, "kanban", nil)
	if len(reply.Buttons) != 1 || reply.Buttons[0][0].WebAppURL != "https://board.example.com/app?project_id=1" {
		t.Fatalf("unexpected board button: %+v", reply.Buttons)
	}

	// With several projects the user picks one.
	r.HandleCommand(ctx, user, "new_project", []string{"App"})
	reply = r.HandleCommand(ctx, user, "kanban", nil)
	if len(reply.Buttons) != 2 {
		t.Fatalf("expected one button per project: %+v", reply.Buttons)
	}
}

func TestStartAndUnknownCommand(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)

	reply := r.HandleCommand(ctx, User{ID: 1, FirstName: "Ann"}, "start", nil)
	if !strings.Contains(reply.Text, "Hi, Ann!") {
		t.Fatalf("unexpected greeting: %q", reply.Text)
	}

	reply = r.HandleCommand(ctx, User{ID: 1}, "bogus", nil)
	if !strings.Contains(reply.Text, "Here is what I can do") {
		t.Fatalf("expected help text: %q", reply.Text)
	}
}

func TestHandleTextUsesAssistant(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)

	reply := r.HandleText(ctx, User{ID: 1}, "help me plan")
	if reply.Text == "" {
		t.Fatalf("expected assistant reply")
	}
}
