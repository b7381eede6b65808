package domain

import "strings"

// TaskStatus is a recognized task status label. Callers may supply arbitrary
// free-text labels; the constants below are the vocabulary the assistant
// understands for grouping and done-detection. Unrecognized labels are kept
// and displayed verbatim.
type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "created"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusDone       TaskStatus = "done"
)

// ProjectStatusInProgress is the status assigned to a freshly created project.
const ProjectStatusInProgress = "in progress"

// Role labels for conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// IsDone reports whether a status label counts as done-equivalent.
func IsDone(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), string(TaskStatusDone))
}
