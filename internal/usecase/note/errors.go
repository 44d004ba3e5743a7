// Package note provides the use cases of the personal notes application.
package note

import "errors"

var (
	// ErrNoteNotFound indicates that no note with the slug exists for the
	// acting user. Notes of other users are reported the same way.
	ErrNoteNotFound = errors.New("note not found")

	// ErrUnauthenticated indicates that no author was supplied.
	ErrUnauthenticated = errors.New("authentication required")
)
