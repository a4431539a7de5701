package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNoDefaultOrg   = errors.New("no active organization in the local database")
	ErrNoDefaultUser  = errors.New("no non-system user in the local database")
	ErrRemoteAuth     = errors.New("remote API rejected the token")
	ErrRemoteNotFound = errors.New("remote API endpoint not found")
)
