package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bes-dev/flowento/internal/domain"
)

func (r *Router) start(ctx context.Context, user User) Reply {
	name := user.FirstName
	if name == "" {
		name = "there"
	}
	return textReply(fmt.Sprintf(
		"Hi, %s! I'm an AI assistant for managing projects.\n\n"+
			"I can help you:\n"+
			"• Create and manage projects\n"+
			"• Keep kanban boards for your tasks\n"+
			"• Track progress and remind you about tasks\n\n"+
			"Use these commands:\n"+
			"/new_project - Create a new project\n"+
			"/my_projects - List your projects\n"+
			"/kanban - Open the kanban board\n"+
			"/help - Show help\n\n"+
			"Or just tell me what you need and I'll help!",
		name))
}

func (r *Router) help() Reply {
	return textReply(
		"Here is what I can do:\n\n" +
			"Basics:\n" +
			"/start - Start working with the bot\n" +
			"/help - Show this help\n\n" +
			"Projects:\n" +
			"/new_project - Create a new project\n" +
			"/my_projects - List your projects\n" +
			"/project {id} - Project details\n" +
			"/kanban - Open the kanban board\n\n" +
			"Tasks:\n" +
			"/add_task {project_id} {name} - Add a task\n" +
			"/tasks {project_id} - Show project tasks\n" +
			"/move_task {project_id} {task_id} {status} - Change a task's status\n\n" +
			"You can also just write me what you need and I'll try to help!")
}

func (r *Router) newProject(ctx context.Context, user User, args []string) Reply {
	if len(args) < 1 {
		return textReply("Please provide a project name. For example:\n/new_project My new site")
	}

	name := strings.Join(args, " ")
	project, err := r.svc.AddProject(ctx, user.ID, name, "")
	if err != nil {
		log.Printf("ERROR: add_project for user %d: %v", user.ID, err)
		return textReply(serviceApology)
	}

	reply := textReply(fmt.Sprintf(
		"Project '%s' created!\nProject ID: %d\n\n"+
			"You can now add tasks to it with:\n/add_task %d Task name",
		project.Name, project.ID, project.ID))

	reply.Messages = append(reply.Messages, Reply{
		Text: "What would you like to do next?",
		Buttons: [][]Button{{
			callbackButton("Add a task", fmt.Sprintf("add_task_%d", project.ID)),
			callbackButton("Open kanban", fmt.Sprintf("open_kanban_%d", project.ID)),
		}},
	})
	return reply
}

func (r *Router) myProjects(ctx context.Context, user User) Reply {
	projects, err := r.svc.GetProjects(ctx, user.ID)
	if err != nil {
		log.Printf("ERROR: get_projects for user %d: %v", user.ID, err)
		return textReply(serviceApology)
	}

	if len(projects) == 0 {
		return textReply("You don't have any projects yet. Create your first one with:\n/new_project Project name")
	}

	var b strings.Builder
	b.WriteString("Your projects:\n\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "📁 %s (ID: %d)\nStatus: %s\nTasks: %d/%d done\n\n",
			p.Name, p.ID, p.Status, p.DoneTasks(), len(p.Tasks))
	}
	b.WriteString("To see a project's tasks use:\n/tasks {project_id}")

	return Reply{
		Text:    b.String(),
		Buttons: [][]Button{{boardButton("Open kanban board", r.webAppURL)}},
	}
}

func (r *Router) projectInfo(ctx context.Context, user User, args []string) Reply {
	if len(args) < 1 {
		return textReply("Please provide a project ID. For example:\n/project 1")
	}
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return textReply("The project ID must be a number.")
	}

	project, err := r.svc.GetProject(ctx, user.ID, projectID)
	if err != nil {
		log.Printf("ERROR: get_project %d for user %d: %v", projectID, user.ID, err)
		return textReply(serviceApology)
	}
	if project == nil {
		return projectNotFound(projectID)
	}

	counts := map[string]int{}
	order := []string{}
	for _, t := range project.Tasks {
		if _, seen := counts[t.Status]; !seen {
			order = append(order, t.Status)
		}
		counts[t.Status]++
	}

	statusText := ""
	for _, status := range order {
		statusText += fmt.Sprintf("- %s: %d\n", status, counts[status])
	}
	if statusText == "" {
		statusText = "- No tasks\n"
	}

	text := fmt.Sprintf(
		"📁 Project: %s (ID: %d)\nStatus: %s\nCreated: %s\n\n"+
			"Total tasks: %d\nTask statuses:\n%s\n"+
			"Project commands:\n"+
			"/tasks %d - Show the project's tasks\n"+
			"/add_task %d Task name - Add a new task",
		project.Name, project.ID, project.Status, project.CreatedAt.Format("02.01.2006"),
		len(project.Tasks), statusText, projectID, projectID)

	return Reply{
		Text: text,
		Buttons: [][]Button{{
			callbackButton("Add a task", fmt.Sprintf("add_task_%d", projectID)),
			boardButton("Project kanban", r.boardURL(projectID)),
		}},
	}
}

func (r *Router) addTask(ctx context.Context, user User, args []string) Reply {
	if len(args) < 2 {
		return textReply("Please provide a project ID and a task name. For example:\n/add_task 1 Design the landing page")
	}
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return textReply("The project ID must be a number.")
	}
	taskName := strings.Join(args[1:], " ")

	project, err := r.svc.GetProject(ctx, user.ID, projectID)
	if err != nil {
		log.Printf("ERROR: get_project %d for user %d: %v", projectID, user.ID, err)
		return textReply(serviceApology)
	}
	if project == nil {
		return projectNotFound(projectID)
	}

	task, err := r.svc.AddTask(ctx, user.ID, projectID, taskName, "", "")
	if err != nil || task == nil {
		log.Printf("ERROR: add_task to project %d for user %d: %v", projectID, user.ID, err)
		return textReply(serviceApology)
	}

	reply := Reply{
		Text: fmt.Sprintf(
			"Task '%s' added to project '%s'!\nTask ID: %d\nStatus: %s\n\nYou can change the task's status:",
			task.Name, project.Name, task.ID, task.Status),
		Buttons: [][]Button{
			{
				callbackButton("In progress", fmt.Sprintf("task_%d_%d_%s", projectID, task.ID, domain.TaskStatusInProgress)),
				callbackButton("Done", fmt.Sprintf("task_%d_%d_%s", projectID, task.ID, domain.TaskStatusDone)),
			},
			{boardButton("Open kanban", r.boardURL(projectID))},
		},
	}

	reply.Messages = append(reply.Messages, textReply(fmt.Sprintf(
		"Want a deadline for this task? If so, use:\n/set_deadline %d %d DD.MM.YYYY",
		projectID, task.ID)))
	return reply
}

func (r *Router) tasks(ctx context.Context, user User, args []string) Reply {
	if len(args) < 1 {
		return textReply("Please provide a project ID. For example:\n/tasks 1")
	}
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return textReply("The project ID must be a number.")
	}

	project, err := r.svc.GetProject(ctx, user.ID, projectID)
	if err != nil {
		log.Printf("ERROR: get_project %d for user %d: %v", projectID, user.ID, err)
		return textReply(serviceApology)
	}
	if project == nil {
		return projectNotFound(projectID)
	}

	if len(project.Tasks) == 0 {
		return textReply(fmt.Sprintf(
			"Project '%s' has no tasks yet. Add the first one with:\n/add_task %d Task name",
			project.Name, projectID))
	}

	// Group tasks by status, first-seen order. A plain-text kanban board.
	groups := map[string][]domain.Task{}
	order := []string{}
	for _, t := range project.Tasks {
		if _, seen := groups[t.Status]; !seen {
			order = append(order, t.Status)
		}
		groups[t.Status] = append(groups[t.Status], t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Tasks in project '%s':\n\n", project.Name)
	for _, status := range order {
		fmt.Fprintf(&b, "== %s ==\n", status)
		for _, t := range groups[status] {
			deadline := ""
			if t.Deadline != "" {
				deadline = fmt.Sprintf(" (due %s)", t.Deadline)
			}
			fmt.Fprintf(&b, "• %s (ID: %d)%s\n", t.Name, t.ID, deadline)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "To change a task's status use:\n/move_task %d [task_id] [new status]", projectID)

	return Reply{
		Text:    b.String(),
		Buttons: [][]Button{{boardButton("Open kanban board", r.boardURL(projectID))}},
	}
}

func (r *Router) moveTask(ctx context.Context, user User, args []string) Reply {
	if len(args) < 3 {
		return textReply("Please provide a project ID, a task ID and the new status. For example:\n/move_task 1 2 done")
	}
	projectID, err1 := strconv.Atoi(args[0])
	taskID, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return textReply("The project ID and task ID must be numbers.")
	}
	newStatus := strings.Join(args[2:], " ")

	ok, err := r.svc.UpdateTaskStatus(ctx, user.ID, projectID, taskID, newStatus)
	if err != nil {
		log.Printf("ERROR: move_task %d/%d for user %d: %v", projectID, taskID, user.ID, err)
		return textReply(serviceApology)
	}
	if !ok {
		return textReply("Could not update the task's status. Check the project ID and task ID.")
	}

	reply := textReply(fmt.Sprintf("Task status changed to '%s'.", newStatus))
	if followUp := r.doneFollowUp(ctx, user, projectID, newStatus); followUp != nil {
		reply.Messages = append(reply.Messages, *followUp)
	}
	return reply
}

// doneFollowUp builds the proactive message sent after a task moves to done.
func (r *Router) doneFollowUp(ctx context.Context, user User, projectID int, newStatus string) *Reply {
	if !domain.IsDone(newStatus) {
		return nil
	}
	project, err := r.svc.GetProject(ctx, user.ID, projectID)
	if err != nil || project == nil {
		return nil
	}

	remaining := project.RemainingTasks()
	if remaining > 0 {
		return &Reply{
			Text: fmt.Sprintf(
				"Nice! Project '%s' still has %d unfinished tasks. Want to review them on the kanban board?",
				project.Name, remaining),
			Buttons: [][]Button{{boardButton("Open kanban board", r.boardURL(projectID))}},
		}
	}
	out := textReply(fmt.Sprintf(
		"Congratulations! All tasks in project '%s' are done! Want to set the project's status to 'done'?",
		project.Name))
	return &out
}

func (r *Router) setDeadline(ctx context.Context, user User, args []string) Reply {
	if len(args) < 3 {
		return textReply("Please provide a project ID, a task ID and a deadline date. For example:\n/set_deadline 1 2 31.12.2025")
	}
	projectID, err1 := strconv.Atoi(args[0])
	taskID, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return textReply("The project ID and task ID must be numbers.")
	}
	deadline := args[2]

	project, err := r.svc.GetProject(ctx, user.ID, projectID)
	if err != nil {
		log.Printf("ERROR: get_project %d for user %d: %v", projectID, user.ID, err)
		return textReply(serviceApology)
	}
	if project == nil {
		return textReply(fmt.Sprintf("Project with ID %d was not found.", projectID))
	}

	ok, err := r.svc.SetTaskDeadline(ctx, user.ID, projectID, taskID, deadline)
	if err != nil {
		log.Printf("ERROR: set_deadline %d/%d for user %d: %v", projectID, taskID, user.ID, err)
		return textReply(serviceApology)
	}
	if !ok {
		return textReply(fmt.Sprintf("Task with ID %d was not found in the project.", taskID))
	}

	return Reply{
		Text:    fmt.Sprintf("Task deadline set to %s.", deadline),
		Buttons: [][]Button{{boardButton("Open kanban board", r.boardURL(projectID))}},
	}
}

func (r *Router) kanban(ctx context.Context, user User) Reply {
	projects, err := r.svc.GetProjects(ctx, user.ID)
	if err != nil {
		log.Printf("ERROR: get_projects for user %d: %v", user.ID, err)
		return textReply(serviceApology)
	}

	if len(projects) == 0 {
		return textReply("You don't have any projects yet. Create your first one with:\n/new_project Project name")
	}

	if len(projects) == 1 {
		p := projects[0]
		return Reply{
			Text:    fmt.Sprintf("Tap the button below to open the kanban board for project '%s':", p.Name),
			Buttons: [][]Button{{boardButton("Open kanban board", r.boardURL(p.ID))}},
		}
	}

	buttons := make([][]Button, 0, len(projects))
	for _, p := range projects {
		buttons = append(buttons, []Button{boardButton(p.Name, r.boardURL(p.ID))})
	}
	return Reply{
		Text:    "Pick the project whose kanban board you want to open:",
		Buttons: buttons,
	}
}

func projectNotFound(projectID int) Reply {
	return textReply(fmt.Sprintf(
		"Project with ID %d was not found. Check your project list with:\n/my_projects",
		projectID))
}

// serviceApology is the fixed reply for unexpected internal failures.
const serviceApology = "Sorry, something went wrong while handling your request. Please try again later."
