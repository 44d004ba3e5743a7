package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/observability/logging"
	authservice "newsnotes/internal/service/auth"
)

// DefaultCookieName is the session cookie name.
const DefaultCookieName = "sessionid"

// SessionResolver turns a session token into its user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Set writes the session cookie.
func (c CookieConfig) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the session cookie of every request. Requests without a
// valid cookie continue anonymously; a stale cookie is cleared.
func Session(resolver SessionResolver, cookie CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookie.name())
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.Resolve(r.Context(), c.Value)
			if err != nil {
				if !errors.Is(err, authservice.ErrInvalidSession) {
					logging.FromContext(r.Context()).Error("session lookup failed",
						slog.Any("error", err))
				}
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(slog.Int64("user_id", user.ID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
