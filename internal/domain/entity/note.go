package entity

import "time"

const (
	// MaxNoteTitleLength is the maximum title length in runes.
	MaxNoteTitleLength = 100
	// MaxSlugLength is the maximum slug length in bytes.
	MaxSlugLength = 100
)

// Note is a personal note. Slug is unique across all notes, not per author.
type Note struct {
	ID        int64
	Title     string
	Text      string
	Slug      string
	AuthorID  int64
	CreatedAt time.Time
}

// OwnedBy reports whether userID is the author of the note.
func (n *Note) OwnedBy(userID int64) bool {
	return n != nil && userID > 0 && n.AuthorID == userID
}
