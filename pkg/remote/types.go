package remote

import "time"

// ObjectRef is how the remote API references another object: a uuid
// plus its display name at serialization time.
type ObjectRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Group is a remote contact group record.
type Group struct {
	UUID   string `json:"uuid"`
	Name   string `json:"name"`
	Query  string `json:"query"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Contact is a remote contact record. Installations older than the
// status field expose blocked/stopped booleans instead; both shapes are
// kept so the copier can derive a status either way.
type Contact struct {
	UUID       string            `json:"uuid"`
	Name       string            `json:"name"`
	Language   string            `json:"language"`
	URNs       []string          `json:"urns"`
	Groups     []ObjectRef       `json:"groups"`
	Fields     map[string]string `json:"fields"`
	Status     string            `json:"status"`
	Blocked    *bool             `json:"blocked"`
	Stopped    *bool             `json:"stopped"`
	CreatedOn  time.Time         `json:"created_on"`
	ModifiedOn time.Time         `json:"modified_on"`
	LastSeenOn *time.Time        `json:"last_seen_on"`
}

// Label is a remote message label record.
type Label struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Broadcast is a remote broadcast record.
type Broadcast struct {
	ID        int64       `json:"id"`
	URNs      []string    `json:"urns"`
	Contacts  []ObjectRef `json:"contacts"`
	Groups    []ObjectRef `json:"groups"`
	Text      string      `json:"text"`
	Status    string      `json:"status"`
	CreatedOn time.Time   `json:"created_on"`
}

// Attachment is one media attachment of a remote message.
type Attachment struct {
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Message is a remote message record.
type Message struct {
	ID          int64        `json:"id"`
	Broadcast   *int64       `json:"broadcast"`
	Contact     *ObjectRef   `json:"contact"`
	URN         string       `json:"urn"`
	Channel     *ObjectRef   `json:"channel"`
	Direction   string       `json:"direction"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	Visibility  string       `json:"visibility"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
	Labels      []ObjectRef  `json:"labels"`
	CreatedOn   time.Time    `json:"created_on"`
	SentOn      *time.Time   `json:"sent_on"`
	ModifiedOn  time.Time    `json:"modified_on"`
}

// FlowStart is a remote flow start record.
type FlowStart struct {
	UUID                string         `json:"uuid"`
	Flow                ObjectRef      `json:"flow"`
	Status              string         `json:"status"`
	Groups              []ObjectRef    `json:"groups"`
	Contacts            []ObjectRef    `json:"contacts"`
	RestartParticipants bool           `json:"restart_participants"`
	ExcludeActive       bool           `json:"exclude_active"`
	Extra               map[string]any `json:"extra"`
	CreatedOn           time.Time      `json:"created_on"`
	ModifiedOn          time.Time      `json:"modified_on"`
}

// RunStep is one visited node in a remote run's path.
type RunStep struct {
	Node string    `json:"node"`
	Time time.Time `json:"time"`
}

// RunValue is one captured result of a remote run. Input and Value are
// raw text, possibly in the legacy pseudo-JSON dialect.
type RunValue struct {
	Name     string    `json:"name"`
	Node     string    `json:"node"`
	Time     time.Time `json:"time"`
	Input    string    `json:"input"`
	Value    string    `json:"value"`
	Category string    `json:"category"`
}

// Run is a remote flow run record.
type Run struct {
	UUID       string              `json:"uuid"`
	Flow       *ObjectRef          `json:"flow"`
	Contact    *ObjectRef          `json:"contact"`
	Start      *ObjectRef          `json:"start"`
	Responded  bool                `json:"responded"`
	Path       []RunStep           `json:"path"`
	Values     map[string]RunValue `json:"values"`
	CreatedOn  time.Time           `json:"created_on"`
	ModifiedOn time.Time           `json:"modified_on"`
	ExitedOn   *time.Time          `json:"exited_on"`
	ExitType   string              `json:"exit_type"`
}

// ResultCategoryCount is one category tally inside a result count.
type ResultCategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ResultCount tallies, per declared flow result, how many runs ended in
// each category.
type ResultCount struct {
	Key        string                `json:"key"`
	Name       string                `json:"name"`
	Categories []ResultCategoryCount `json:"categories"`
}

// FlowRunStats is the per-flow run tally exposed on remote flow records.
type FlowRunStats struct {
	Active      int64 `json:"active"`
	Completed   int64 `json:"completed"`
	Interrupted int64 `json:"interrupted"`
	Expired     int64 `json:"expired"`
}

// Flow is a remote flow record. Only the fields the importer consumes
// are modeled.
type Flow struct {
	UUID     string       `json:"uuid"`
	Name     string       `json:"name"`
	Archived bool         `json:"archived"`
	Runs     FlowRunStats `json:"runs"`
}
