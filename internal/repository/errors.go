package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist upstream.
	ErrNotFound = errors.New("repository: not found")
	// ErrUnauthorized indicates the upstream API rejected the service credentials.
	ErrUnauthorized = errors.New("repository: unauthorized")
)
