package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Callback payload prefixes. The status in a task_ payload may itself contain
// underscores, so the longer prefixes are matched first.
const (
	callbackAddTask    = "add_task_"
	callbackOpenKanban = "open_kanban_"
	callbackTask       = "task_"
)

// HandleCallback handles a button-press callback carrying an opaque string
// payload of the form task_<pid>_<tid>_<status>, add_task_<pid> or
// open_kanban_<pid>.
func (r *Router) HandleCallback(ctx context.Context, user User, payload string) Reply {
	switch {
	case strings.HasPrefix(payload, callbackAddTask):
		return r.addTaskCallback(strings.TrimPrefix(payload, callbackAddTask))

	case strings.HasPrefix(payload, callbackOpenKanban):
		return r.openKanbanCallback(strings.TrimPrefix(payload, callbackOpenKanban))

	case strings.HasPrefix(payload, callbackTask):
		return r.taskStatusCallback(ctx, user, strings.TrimPrefix(payload, callbackTask))

	default:
		return textReply(callbackApology)
	}
}

// taskStatusCallback handles task_<pid>_<tid>_<status>.
func (r *Router) taskStatusCallback(ctx context.Context, user User, rest string) Reply {
	parts := strings.SplitN(rest, "_", 3)
	if len(parts) < 3 {
		return textReply(callbackApology)
	}
	projectID, err1 := strconv.Atoi(parts[0])
	taskID, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return textReply(callbackApology)
	}
	newStatus := parts[2]

	ok, err := r.svc.UpdateTaskStatus(ctx, user.ID, projectID, taskID, newStatus)
	if err != nil {
		log.Printf("ERROR: callback status update %d/%d for user %d: %v", projectID, taskID, user.ID, err)
		return textReply(callbackApology)
	}
	if !ok {
		return textReply("Could not update the task's status.")
	}

	reply := textReply(fmt.Sprintf("Task status changed to '%s'.", newStatus))
	if followUp := r.doneFollowUp(ctx, user, projectID, newStatus); followUp != nil {
		reply.Messages = append(reply.Messages, *followUp)
	}
	return reply
}

// addTaskCallback handles add_task_<pid>.
func (r *Router) addTaskCallback(rest string) Reply {
	projectID, err := strconv.Atoi(rest)
	if err != nil {
		return textReply(callbackApology)
	}
	return textReply(fmt.Sprintf(
		"To add a task to the project, use:\n/add_task %d Task name", projectID))
}

// openKanbanCallback handles open_kanban_<pid>.
func (r *Router) openKanbanCallback(rest string) Reply {
	projectID, err := strconv.Atoi(rest)
	if err != nil {
		return textReply(callbackApology)
	}
	return Reply{
		Text:    "Tap the button below to open the kanban board:",
		Buttons: [][]Button{{boardButton("Open kanban board", r.boardURL(projectID))}},
	}
}

const callbackApology = "Something went wrong while handling the request."
