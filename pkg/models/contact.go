package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact statuses.
const (
	ContactStatusActive   = "A"
	ContactStatusBlocked  = "B"
	ContactStatusStopped  = "S"
	ContactStatusArchived = "V"
)

// ContactStatusChoices maps contact status codes to their API labels.
var ContactStatusChoices = ChoiceSet{
	ContactStatusActive:   "active",
	ContactStatusBlocked:  "blocked",
	ContactStatusStopped:  "stopped",
	ContactStatusArchived: "archived",
}

// Contact is one person the platform talks to. The UUID is carried over
// from the remote system so that runs and messages keep resolving.
type Contact struct {
	ID         int64             `json:"id"`
	UUID       uuid.UUID         `json:"uuid"`
	OrgID      int64             `json:"org_id"`
	Name       string            `json:"name,omitempty"`
	Language   string            `json:"language,omitempty"`
	Status     string            `json:"status"`
	Fields     map[string]string `json:"fields,omitempty"`
	CreatedBy  int64             `json:"created_by"`
	CreatedOn  time.Time         `json:"created_on"`
	ModifiedOn time.Time         `json:"modified_on"`
	LastSeenOn *time.Time        `json:"last_seen_on,omitempty"`
}

// ContactURN is one addressable identity of a contact, e.g.
// "tel:+40721234567" or "telegram:123456".
type ContactURN struct {
	ID        int64  `json:"id"`
	OrgID     int64  `json:"org_id"`
	ContactID int64  `json:"contact_id"`
	Scheme    string `json:"scheme"`
	Path      string `json:"path"`
	Identity  string `json:"identity"`
	Display   string `json:"display,omitempty"`
}

// ContactGroupMembership joins contacts to groups.
type ContactGroupMembership struct {
	ContactID int64 `json:"contact_id"`
	GroupID   int64 `json:"group_id"`
}
