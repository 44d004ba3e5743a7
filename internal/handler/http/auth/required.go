package auth

import (
	"net/http"

	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/handler/http/urls"
)

// LoginRequired sends anonymous requests to the login page with the
// original URL as next.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			respond.Redirect(w, r, urls.LoginRedirect(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
