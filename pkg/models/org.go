package models

import (
	"time"

	"github.com/google/uuid"
)

// Org is the local organization that owns every imported row.
type Org struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	IsAnon    bool      `json:"is_anon"`
	CreatedOn time.Time `json:"created_on"`
}

// User is a local account. The first non-system user becomes the
// created_by/modified_by owner of every imported row.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsSystem  bool      `json:"is_system"`
	CreatedOn time.Time `json:"created_on"`
}
