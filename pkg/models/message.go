package models

import "time"

// Message directions.
const (
	MsgDirectionIn  = "I"
	MsgDirectionOut = "O"
)

// MsgDirectionChoices maps message direction codes to their API labels.
var MsgDirectionChoices = ChoiceSet{
	MsgDirectionIn:  "in",
	MsgDirectionOut: "out",
}

// Message types.
const (
	MsgTypeInbox = "I"
	MsgTypeFlow  = "F"
	MsgTypeIVR   = "V"
)

// MsgTypeChoices maps message type codes to their API labels.
var MsgTypeChoices = ChoiceSet{
	MsgTypeInbox: "inbox",
	MsgTypeFlow:  "flow",
	MsgTypeIVR:   "ivr",
}

// Message statuses.
const (
	MsgStatusPending   = "P"
	MsgStatusQueued    = "Q"
	MsgStatusWired     = "W"
	MsgStatusSent      = "S"
	MsgStatusDelivered = "D"
	MsgStatusHandled   = "H"
	MsgStatusErrored   = "E"
	MsgStatusFailed    = "F"
)

// MsgStatusChoices maps message status codes to their API labels.
var MsgStatusChoices = ChoiceSet{
	MsgStatusPending:   "pending",
	MsgStatusQueued:    "queued",
	MsgStatusWired:     "wired",
	MsgStatusSent:      "sent",
	MsgStatusDelivered: "delivered",
	MsgStatusHandled:   "handled",
	MsgStatusErrored:   "errored",
	MsgStatusFailed:    "failed",
}

// Message visibilities.
const (
	MsgVisibilityVisible  = "V"
	MsgVisibilityArchived = "A"
	MsgVisibilityDeleted  = "D"
)

// MsgVisibilityChoices maps message visibility codes to their API labels.
var MsgVisibilityChoices = ChoiceSet{
	MsgVisibilityVisible:  "visible",
	MsgVisibilityArchived: "archived",
	MsgVisibilityDeleted:  "deleted",
}

// Message is one inbound or outbound message. Remote message ids are
// preserved.
type Message struct {
	ID           int64      `json:"id"`
	OrgID        int64      `json:"org_id"`
	BroadcastID  *int64     `json:"broadcast_id,omitempty"`
	ContactID    *int64     `json:"contact_id,omitempty"`
	ContactURNID *int64     `json:"contact_urn_id,omitempty"`
	ChannelID    *int64     `json:"channel_id,omitempty"`
	Direction    string     `json:"direction"`
	MsgType      string     `json:"msg_type"`
	Status       string     `json:"status"`
	Visibility   string     `json:"visibility"`
	Text         string     `json:"text"`
	Attachments  []string   `json:"attachments,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
	SentOn       *time.Time `json:"sent_on,omitempty"`
	ModifiedOn   time.Time  `json:"modified_on"`
}

// MessageLabel joins messages to labels.
type MessageLabel struct {
	MessageID int64  `json:"message_id"`
	LabelID   *int64 `json:"label_id"`
}
