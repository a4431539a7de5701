package models

import "time"

// Broadcast statuses.
const (
	BroadcastStatusPending = "P"
	BroadcastStatusQueued  = "Q"
	BroadcastStatusSent    = "S"
	BroadcastStatusFailed  = "F"
)

// BroadcastStatusChoices maps broadcast status codes to their API labels.
var BroadcastStatusChoices = ChoiceSet{
	BroadcastStatusPending: "pending",
	BroadcastStatusQueued:  "queued",
	BroadcastStatusSent:    "sent",
	BroadcastStatusFailed:  "failed",
}

// Broadcast is one outgoing message sent to a set of contacts, groups,
// and URNs. Remote broadcast ids are preserved so messages keep their
// broadcast reference.
type Broadcast struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}

// BroadcastGroup joins broadcasts to recipient groups.
type BroadcastGroup struct {
	BroadcastID int64 `json:"broadcast_id"`
	GroupID     int64 `json:"group_id"`
}

// BroadcastContact joins broadcasts to recipient contacts. A nil
// ContactID records a recipient that could not be resolved locally.
type BroadcastContact struct {
	BroadcastID int64  `json:"broadcast_id"`
	ContactID   *int64 `json:"contact_id"`
}

// BroadcastURN joins broadcasts to recipient URNs.
type BroadcastURN struct {
	BroadcastID int64  `json:"broadcast_id"`
	URNID       *int64 `json:"urn_id"`
}
