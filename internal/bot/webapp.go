package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bes-dev/flowento/internal/domain"
)

// HandleWebAppData handles a JSON payload delivered by the embedded kanban
// web app. Malformed payloads are logged and answered with a fixed apology;
// nothing is mutated for them.
func (r *Router) HandleWebAppData(ctx context.Context, user User, data []byte) Reply {
	log.Printf("web app payload from user %d: %s", user.ID, data)

	result, err := r.svc.ApplyBoardPayload(ctx, user.ID, data)
	if err != nil {
		log.Printf("ERROR: board payload from user %d: %v", user.ID, err)
		return textReply("Something went wrong while processing data from the kanban board.")
	}

	switch result.Action {
	case domain.BoardActionStatusUpdate:
		if !result.Applied {
			return textReply("Could not update the task's status.")
		}
		return textReply(fmt.Sprintf("Task status updated to '%s'.", result.Status))

	case domain.BoardActionUpdateTask:
		if !result.Applied {
			return textReply("Could not update the task.")
		}
		return textReply(fmt.Sprintf("Task '%s' updated.", result.Name))

	case domain.BoardActionCreateTask:
		if !result.Applied {
			return textReply("Could not create the task.")
		}
		return textReply(fmt.Sprintf("Task '%s' created.", result.Name))

	default:
		return textReply("Something went wrong while processing data from the kanban board.")
	}
}
