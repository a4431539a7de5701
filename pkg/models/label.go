package models

import (
	"time"

	"github.com/google/uuid"
)

// Label is a named tag applied to messages.
type Label struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name"`
	CreatedBy int64     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}
