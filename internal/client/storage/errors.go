package storage

import "errors"

// Common credential storage errors
var (
	// ErrCredentialsNotFound indicates that no credentials are persisted
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
