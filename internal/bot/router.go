package bot

import (
	"context"
	"fmt"

	"github.com/bes-dev/flowento/internal/service"
)

// Router dispatches parsed chat events to handlers.
type Router struct {
	svc       *service.Service
	webAppURL string
}

// NewRouter creates a new router.
func NewRouter(svc *service.Service, webAppURL string) *Router {
	return &Router{svc: svc, webAppURL: webAppURL}
}

// HandleCommand dispatches a slash command with its ordered string arguments.
// Unknown commands get the help text.
func (r *Router) HandleCommand(ctx context.Context, user User, name string, args []string) Reply {
	switch name {
	case "start":
		return r.start(ctx, user)
	case "help":
		return r.help()
	case "new_project":
		return r.newProject(ctx, user, args)
	case "my_projects":
		return r.myProjects(ctx, user)
	case "project":
		return r.projectInfo(ctx, user, args)
	case "add_task":
		return r.addTask(ctx, user, args)
	case "tasks":
		return r.tasks(ctx, user, args)
	case "move_task":
		return r.moveTask(ctx, user, args)
	case "set_deadline":
		return r.setDeadline(ctx, user, args)
	case "kanban":
		return r.kanban(ctx, user)
	default:
		return r.help()
	}
}

// HandleText handles a free-text message by asking the assistant for a reply.
func (r *Router) HandleText(ctx context.Context, user User, text string) Reply {
	return textReply(r.svc.GenerateReply(ctx, user.ID, text))
}

// boardURL returns the web-app URL for a project's kanban board.
func (r *Router) boardURL(projectID int) string {
	return fmt.Sprintf("%s?project_id=%d", r.webAppURL, projectID)
}

func boardButton(label, url string) Button {
	return Button{Label: label, WebAppURL: url}
}

func callbackButton(label, data string) Button {
	return Button{Label: label, CallbackData: data}
}
