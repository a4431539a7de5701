package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact group statuses.
const (
	GroupStatusInitializing = "I"
	GroupStatusEvaluating   = "V"
	GroupStatusReady        = "R"
)

// GroupStatusChoices maps group status codes to their API labels.
var GroupStatusChoices = ChoiceSet{
	GroupStatusInitializing: "initializing",
	GroupStatusEvaluating:   "evaluating",
	GroupStatusReady:        "ready",
}

// Group types. The remote API does not expose the type, so imported
// groups are assumed manual.
const (
	GroupTypeManual = "M"
	GroupTypeSmart  = "Q"
)

// ContactGroup is a named set of contacts.
type ContactGroup struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name"`
	Query     string    `json:"query,omitempty"`
	Status    string    `json:"status"`
	GroupType string    `json:"group_type"`
	IsSystem  bool      `json:"is_system"`
	CreatedBy int64     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}
