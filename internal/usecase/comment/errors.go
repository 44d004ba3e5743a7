// Package comment provides the comment use cases of the news application.
// Comments can only be changed or removed by their author; to everybody
// else a foreign comment does not exist.
package comment

import "errors"

var (
	// ErrCommentNotFound indicates that the comment does not exist or is not
	// owned by the acting user.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNewsNotFound indicates that the news item being commented does not exist.
	ErrNewsNotFound = errors.New("news not found")

	// ErrInvalidCommentID indicates that the comment ID is not a positive integer.
	ErrInvalidCommentID = errors.New("invalid comment ID")

	// ErrUnauthenticated indicates that no author was supplied.
	ErrUnauthenticated = errors.New("authentication required")
)
