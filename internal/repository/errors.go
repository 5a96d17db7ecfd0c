package repository

import "errors"

var (
	// ErrNotFound means the referenced row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a uniqueness constraint rejected the write
	ErrDuplicate = errors.New("already exists")
)
