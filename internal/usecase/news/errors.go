// Package news provides the read-side use cases of the news application:
// the paginated home page and the detail page with its comment thread.
package news

import "errors"

var (
	// ErrNewsNotFound indicates that the requested news item does not exist.
	ErrNewsNotFound = errors.New("news not found")

	// ErrInvalidNewsID indicates that the news ID is not a positive integer.
	ErrInvalidNewsID = errors.New("invalid news ID")

	// ErrInvalidPage indicates that the requested page number is below 1.
	ErrInvalidPage = errors.New("invalid page")
)
