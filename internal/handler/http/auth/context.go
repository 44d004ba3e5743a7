// Package auth is the HTTP side of accounts: the session cookie
// middleware, the login-required guard and the login, logout and signup
// pages.
package auth

import (
	"context"

	"newsnotes/internal/domain/entity"
)

type ctxKey string

const ctxUser ctxKey = "user"

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *entity.User {
	u, _ := ctx.Value(ctxUser).(*entity.User)
	return u
}

// UserView is the user as exposed in page contexts.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ViewOf returns the page-context view of u, or nil for anonymous.
func ViewOf(u *entity.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Username: u.Username}
}
