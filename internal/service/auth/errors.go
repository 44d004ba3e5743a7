package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned by Signup when the username exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidSession is returned for a malformed, forged or expired
	// session token, and for a token whose user no longer exists.
	ErrInvalidSession = errors.New("invalid session")
)
