// Package respond writes the JSON page documents and error bodies of the
// site, sanitizing anything that is not meant for users.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newsnotes/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Page renders a page context with 200 OK.
func Page(w http.ResponseWriter, ctx any) {
	JSON(w, http.StatusOK, ctx)
}

// Redirect answers with 302 Found to target.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// NotFound answers with the 404 page.
func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments mark error texts that are fine to show to users.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"already taken",
	"must be",
	"too long",
	"too short",
	"rate limit",
}

// SafeError writes err for the user if it is known to be harmless and a
// generic message otherwise. 5xx errors are always logged and masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if code < http.StatusInternalServerError && isSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafe(err error) bool {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range safeFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
