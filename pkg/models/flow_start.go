package models

import (
	"time"

	"github.com/google/uuid"
)

// Flow start statuses.
const (
	FlowStartStatusPending  = "P"
	FlowStartStatusStarting = "S"
	FlowStartStatusComplete = "C"
	FlowStartStatusFailed   = "F"
)

// FlowStartStatusChoices maps flow start status codes to their API labels.
var FlowStartStatusChoices = ChoiceSet{
	FlowStartStatusPending:  "pending",
	FlowStartStatusStarting: "starting",
	FlowStartStatusComplete: "complete",
	FlowStartStatusFailed:   "failed",
}

// FlowStart is one request to start a set of contacts and groups in a flow.
type FlowStart struct {
	ID                  int64          `json:"id"`
	UUID                uuid.UUID      `json:"uuid"`
	OrgID               int64          `json:"org_id"`
	FlowID              int64          `json:"flow_id"`
	Status              string         `json:"status"`
	RestartParticipants bool           `json:"restart_participants"`
	IncludeActive       bool           `json:"include_active"`
	Extra               map[string]any `json:"extra,omitempty"`
	CreatedBy           int64          `json:"created_by"`
	CreatedOn           time.Time      `json:"created_on"`
	ModifiedOn          time.Time      `json:"modified_on"`
}

// FlowStartGroup joins flow starts to their target groups.
type FlowStartGroup struct {
	FlowStartID int64  `json:"flow_start_id"`
	GroupID     *int64 `json:"group_id"`
}

// FlowStartContact joins flow starts to their target contacts.
type FlowStartContact struct {
	FlowStartID int64 `json:"flow_start_id"`
	ContactID   int64 `json:"contact_id"`
}
