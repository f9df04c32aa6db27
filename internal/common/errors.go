// Package common defines shared constants and sentinel errors used across
// the answerbook layers. Callers should use errors.Is to match these values;
// services wrap them with context via fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// ErrValidation reports an empty or otherwise unacceptable input field.
	ErrValidation = errors.New("validation error")

	// ErrNotFound reports an operation targeting an unknown answer id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a category name collision.
	ErrDuplicate = errors.New("already exists")

	// Import errors.
	ErrFormat = errors.New("invalid file format")
	ErrParse  = errors.New("invalid json")

	// ErrPersistence reports a failed write to durable storage. The in-memory
	// state is left as it was before the operation.
	ErrPersistence = errors.New("persistence error")
)
