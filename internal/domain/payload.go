package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Board payload actions.
const (
	BoardActionStatusUpdate = "statusUpdate"
	BoardActionUpdateTask   = "updateTask"
	BoardActionCreateTask   = "createTask"
)

// ErrMalformedPayload is returned when an embedded-app payload cannot be
// decoded or is missing required keys.
var ErrMalformedPayload = errors.New("malformed board payload")

// FlexInt decodes a JSON number or a numeric string. The embedded web app is
// not consistent about whether ids arrive as numbers or strings.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	*f = FlexInt(n)
	return nil
}

// BoardPayload is the JSON payload delivered by the embedded kanban app.
type BoardPayload struct {
	Action      string  `json:"action,omitempty"`
	ProjectID   FlexInt `json:"projectId"`
	ID          FlexInt `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
}

// DecodeBoardPayload parses and validates an embedded-app payload, returning
// the resolved action. A payload without an explicit action is classified by
// its keys: id+name means update, name alone means create.
func DecodeBoardPayload(data []byte) (*BoardPayload, string, error) {
	var p BoardPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.ProjectID <= 0 {
		return nil, "", fmt.Errorf("%w: missing projectId", ErrMalformedPayload)
	}

	switch {
	case p.Action == BoardActionStatusUpdate:
		if p.ID <= 0 {
			return nil, "", fmt.Errorf("%w: statusUpdate without task id", ErrMalformedPayload)
		}
		return &p, BoardActionStatusUpdate, nil
	case p.ID > 0 && p.Name != "":
		return &p, BoardActionUpdateTask, nil
	case p.Name != "":
		return &p, BoardActionCreateTask, nil
	default:
		return nil, "", fmt.Errorf("%w: no recognizable action", ErrMalformedPayload)
	}
}
