package models

import (
	"github.com/google/uuid"
)

// Flow is a locally persisted flow definition. Only the fields the
// importer reads are modeled; the definition itself stays opaque JSONB.
type Flow struct {
	ID       int64        `json:"id"`
	UUID     uuid.UUID    `json:"uuid"`
	OrgID    int64        `json:"org_id"`
	Name     string       `json:"name"`
	Metadata FlowMetadata `json:"metadata"`
}

// FlowMetadata is the declared shape of a flow: its results and the
// objects it depends on.
type FlowMetadata struct {
	Results      []FlowResult     `json:"results"`
	Dependencies []FlowDependency `json:"dependencies"`
}

// FlowResult describes one declared result of a flow. A result can be
// associated with several nodes across flow revisions; NodeUUIDs lists
// them in declaration order.
type FlowResult struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	NodeUUIDs  []string `json:"node_uuids"`
	Categories []string `json:"categories,omitempty"`
}

// FlowDependency describes one object a flow references, e.g. a group
// used by a "add to group" action or a group-membership split.
type FlowDependency struct {
	Name string `json:"name"`
	Type string `json:"type"`
	UUID string `json:"uuid,omitempty"`
}

// DependencyTypeGroup marks dependencies whose captured result values
// carry group references that need uuid translation.
const DependencyTypeGroup = "group"

// FlowCategoryCount is one denormalized counter of how many runs ended
// in a given result category.
type FlowCategoryCount struct {
	ID           int64  `json:"id"`
	FlowID       int64  `json:"flow_id"`
	NodeUUID     string `json:"node_uuid"`
	ResultKey    string `json:"result_key"`
	ResultName   string `json:"result_name"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

// FlowRunCount is one denormalized counter of runs per exit type.
type FlowRunCount struct {
	ID       int64  `json:"id"`
	FlowID   int64  `json:"flow_id"`
	ExitType string `json:"exit_type"`
	Count    int64  `json:"count"`
}
