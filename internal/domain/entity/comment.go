package entity

import "time"

// Comment belongs to one News item and is owned by its author.
// AuthorName is denormalized from the users table when comments are read.
type Comment struct {
	ID         int64
	NewsID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// OwnedBy reports whether userID is the author of the comment.
func (c *Comment) OwnedBy(userID int64) bool {
	return c != nil && userID > 0 && c.AuthorID == userID
}
