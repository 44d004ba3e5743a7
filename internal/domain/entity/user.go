package entity

import "time"

// MaxUsernameLength is the maximum username length in runes.
const MaxUsernameLength = 150

// User is an account that can author comments and notes.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
