package registry

import "errors"

// Every operation returns one of these classes to the host, wrapped with
// context via fmt.Errorf and %w. The registry never retries and never
// leaves partial writes behind a failure.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("already exists")
	ErrExpired       = errors.New("expired")
	ErrInvalidInput  = errors.New("invalid input")
)
