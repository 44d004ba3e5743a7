// Package entity defines the core domain entities and validation logic for the application.
// It contains the business objects of both applications (News, Comment, Note) and the
// User that owns comments and notes, along with their validation rules and domain errors.
package entity

import "time"

// News is a published news item. Comments hang off it.
type News struct {
	ID        int64
	Title     string
	Text      string
	Date      time.Time
	CreatedAt time.Time
}

// Today truncates t to midnight in its own location.
// News dates carry no time-of-day component.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
