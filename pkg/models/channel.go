package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a messaging channel. Channels are provisioned by the
// operator before an import; the importer only resolves them by name
// when linking messages.
type Channel struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
