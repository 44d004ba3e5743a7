// Package urls is the named route table of the site.
//
// Handlers are registered with Pattern(name) and links are built with
// Reverse(name, args...), so a path is spelled out exactly once.
package urls

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route names.
const (
	NewsHome   = "news:home"
	NewsDetail = "news:detail"
	NewsEdit   = "news:edit"
	NewsDelete = "news:delete"

	NotesHome    = "notes:home"
	NotesList    = "notes:list"
	NotesAdd     = "notes:add"
	NotesSuccess = "notes:success"
	NotesDetail  = "notes:detail"
	NotesEdit    = "notes:edit"
	NotesDelete  = "notes:delete"

	UsersLogin  = "users:login"
	UsersLogout = "users:logout"
	UsersSignup = "users:signup"
)

// CommentsAnchor is the fragment of the comment list on the news detail page.
const CommentsAnchor = "comments"

var (
	// ErrUnknownRoute is returned for a name missing from the table.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrArgCount is returned when the number of args does not match the
	// route's placeholders.
	ErrArgCount = errors.New("wrong number of route arguments")
)

// routes maps a name to a path template. Each {x} segment is a placeholder.
var routes = map[string]string{
	NewsHome:   "/",
	NewsDetail: "/news/{id}/",
	NewsEdit:   "/edit_comment/{id}/",
	NewsDelete: "/delete_comment/{id}/",

	NotesHome:    "/notes/",
	NotesList:    "/notes/list/",
	NotesAdd:     "/notes/add/",
	NotesSuccess: "/notes/done/",
	NotesDetail:  "/notes/note/{slug}/",
	NotesEdit:    "/notes/edit/{slug}/",
	NotesDelete:  "/notes/delete/{slug}/",

	UsersLogin:  "/auth/login/",
	UsersLogout: "/auth/logout/",
	UsersSignup: "/auth/signup/",
}

// Reverse builds the path of route name, substituting args for the
// placeholders in order.
func Reverse(name string, args ...any) (string, error) {
	tmpl, ok := routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	segments := strings.Split(tmpl, "/")
	next := 0
	for i, seg := range segments {
		if !isPlaceholder(seg) {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: %q wants more than %d", ErrArgCount, name, len(args))
		}
		segments[i] = url.PathEscape(fmt.Sprint(args[next]))
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("%w: %q takes %d, got %d", ErrArgCount, name, next, len(args))
	}
	return strings.Join(segments, "/"), nil
}

// MustReverse is Reverse for names and arities known to be valid.
func MustReverse(name string, args ...any) string {
	p, err := Reverse(name, args...)
	if err != nil {
		panic(err)
	}
	return p
}

// Pattern returns the ServeMux pattern of route name for method, anchored
// with {$} so that only the exact path matches. An empty method matches all.
func Pattern(method, name string) string {
	tmpl, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("urls: unknown route %q", name))
	}
	p := tmpl + "{$}"
	if method != "" {
		p = method + " " + p
	}
	return p
}

// LoginRedirect returns the login URL carrying next as the page to return
// to. Slashes in next are kept readable, e.g. /auth/login/?next=/notes/add/.
func LoginRedirect(next string) string {
	login := MustReverse(UsersLogin)
	if next == "" {
		return login
	}
	return login + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// WithFragment appends #fragment to path.
func WithFragment(path, fragment string) string {
	return path + "#" + fragment
}

// IsSafeRedirect reports whether target is a local absolute path, so it
// can be followed after login without leaving the site.
func IsSafeRedirect(target string) bool {
	if target == "" || target[0] != '/' {
		return false
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}

func isPlaceholder(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}
