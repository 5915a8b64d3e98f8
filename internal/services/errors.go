package services

import "errors"

// Domain errors of the share-link core. Handlers map these to HTTP statuses
// (404, 410, 403).
var (
	// ErrNotFound covers both a missing record and metadata whose blob is
	// gone from disk.
	ErrNotFound = errors.New("file not found")
	// ErrExpired means the record exists but is past its retention window.
	ErrExpired = errors.New("file has expired")
	// ErrForbidden means the requester does not own the file.
	ErrForbidden = errors.New("file is owned by another user")
)
