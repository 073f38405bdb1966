package store

import "errors"

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)
