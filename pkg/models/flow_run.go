package models

import (
	"time"

	"github.com/google/uuid"
)

// Flow run exit types.
const (
	RunExitCompleted   = "C"
	RunExitInterrupted = "I"
	RunExitExpired     = "E"
	RunExitFailed      = "F"
)

// RunExitTypeChoices maps run exit type codes to their API labels.
var RunExitTypeChoices = ChoiceSet{
	RunExitCompleted:   "completed",
	RunExitInterrupted: "interrupted",
	RunExitExpired:     "expired",
	RunExitFailed:      "failed",
}

// PathStep is one visited node in a reconstructed run path. ExitUUID
// points at the node uuid of the following step; the last step of a
// path has a nil ExitUUID.
type PathStep struct {
	NodeUUID  string    `json:"node_uuid"`
	ArrivedOn time.Time `json:"arrived_on"`
	ExitUUID  *string   `json:"exit_uuid"`
}

// RunResult is one captured result of a run. Input and Value hold the
// parsed representation of the legacy text payloads, never the raw text.
type RunResult struct {
	NodeUUID  string    `json:"node_uuid"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
	Input     any       `json:"input"`
	Value     any       `json:"value"`
	Category  string    `json:"category"`
}

// FlowRun is one reconstructed execution of a flow by a contact.
// Path and Results are persisted as JSONB.
type FlowRun struct {
	ID         int64                `json:"id"`
	UUID       uuid.UUID            `json:"uuid"`
	OrgID      int64                `json:"org_id"`
	FlowID     int64                `json:"flow_id"`
	ContactID  *int64               `json:"contact_id"`
	StartID    *int64               `json:"start_id"`
	Responded  bool                 `json:"responded"`
	Path       []PathStep           `json:"path"`
	Results    map[string]RunResult `json:"results"`
	Status     string               `json:"status"`
	CreatedOn  time.Time            `json:"created_on"`
	ModifiedOn time.Time            `json:"modified_on"`
	ExitedOn   *time.Time           `json:"exited_on"`
}
