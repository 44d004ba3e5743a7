// Package fixtures builds a complete in-memory site for HTTP tests, with
// helpers to create users and content and a cookie-carrying test client.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newsnotes/internal/config"
	"newsnotes/internal/domain/entity"
	"newsnotes/internal/server"
	authservice "newsnotes/internal/service/auth"
)

// SessionSecret signs the session cookies of test sites.
const SessionSecret = "fixtures-session-secret-0123456789"

// Config returns the default configuration on in-memory storage.
func Config() *config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageMemory
	cfg.Session.Secret = SessionSecret
	cfg.Auth.LoginRatePerMinute = 600
	cfg.Auth.LoginBurst = 100
	return cfg
}

// Site is a running in-memory site.
type Site struct {
	t       testing.TB
	Config  *config.Config
	Storage *server.Storage
	Server  *server.Server
}

// NewSite builds a site; mutate tweaks the configuration first.
func NewSite(t testing.TB, mutate ...func(*config.Config)) *Site {
	t.Helper()
	cfg := Config()
	for _, m := range mutate {
		m(cfg)
	}
	require.NoError(t, cfg.Validate())

	st := server.MemoryStorage()
	srv := server.New(cfg, st, server.Options{
		Version: "test",
		AuthOptions: []authservice.Option{
			authservice.WithHasher(authservice.NewBcryptHasher(bcrypt.MinCost)),
		},
	})
	return &Site{t: t, Config: cfg, Storage: st, Server: srv}
}

func (s *Site) ctx() context.Context { return context.Background() }

/* ───────── rows ───────── */

// User stores a user without a usable password.
func (s *Site) User(username string) *entity.User {
	s.t.Helper()
	u := &entity.User{Username: username, CreatedAt: time.Now()}
	require.NoError(s.t, s.Storage.Users.Create(s.ctx(), u))
	return u
}

// News stores a news item dated today.
func (s *Site) News(title, text string) *entity.News {
	return s.NewsAt(title, text, entity.Today(time.Now()))
}

// NewsAt stores a news item with the given date.
func (s *Site) NewsAt(title, text string, date time.Time) *entity.News {
	s.t.Helper()
	n := &entity.News{Title: title, Text: text, Date: date, CreatedAt: time.Now()}
	require.NoError(s.t, s.Storage.News.Create(s.ctx(), n))
	return n
}

// NewsList stores n news items, the i-th dated i days before today.
func (s *Site) NewsList(n int) []*entity.News {
	today := entity.Today(time.Now())
	out := make([]*entity.News, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.NewsAt(fmt.Sprintf("Новость %d", i), "Текст.", today.AddDate(0, 0, -i)))
	}
	return out
}

// Comment stores a comment created now.
func (s *Site) Comment(news *entity.News, author *entity.User, text string) *entity.Comment {
	return s.CommentAt(news, author, text, time.Now())
}

// CommentAt stores a comment with the given creation time.
func (s *Site) CommentAt(news *entity.News, author *entity.User, text string, created time.Time) *entity.Comment {
	s.t.Helper()
	c := &entity.Comment{NewsID: news.ID, AuthorID: author.ID, AuthorName: author.Username, Text: text, CreatedAt: created}
	require.NoError(s.t, s.Storage.Comments.Create(s.ctx(), c))
	return c
}

// Note stores a note.
func (s *Site) Note(author *entity.User, title, text, slug string) *entity.Note {
	s.t.Helper()
	n := &entity.Note{Title: title, Text: text, Slug: slug, AuthorID: author.ID, CreatedAt: time.Now()}
	require.NoError(s.t, s.Storage.Notes.Create(s.ctx(), n))
	return n
}

// CommentCount returns the number of stored comments.
func (s *Site) CommentCount() int64 {
	s.t.Helper()
	n, err := s.Storage.Comments.Count(s.ctx())
	require.NoError(s.t, err)
	return n
}

// NoteCount returns the number of stored notes.
func (s *Site) NoteCount() int64 {
	s.t.Helper()
	n, err := s.Storage.Notes.Count(s.ctx())
	require.NoError(s.t, err)
	return n
}

/* ───────── clients ───────── */

// Client sends requests to the site, optionally with a session cookie.
type Client struct {
	site   *Site
	cookie *http.Cookie
}

// Client returns an anonymous client.
func (s *Site) Client() *Client {
	return &Client{site: s}
}

// LoginAs returns a client logged in as user without going through the
// login form.
func (s *Site) LoginAs(user *entity.User) *Client {
	s.t.Helper()
	token, exp, err := s.Server.Accounts.IssueSession(user)
	require.NoError(s.t, err)
	return &Client{site: s, cookie: &http.Cookie{Name: s.Server.Cookie.Name, Value: token, Expires: exp}}
}

// ClientWithCookie returns a client presenting value as its session cookie.
func (s *Site) ClientWithCookie(value string) *Client {
	return &Client{site: s, cookie: &http.Cookie{Name: s.Server.Cookie.Name, Value: value}}
}

// KeepSession adopts the session cookie set or cleared by resp, the way a
// browser would.
func (c *Client) KeepSession(resp *Response) *Client {
	for _, ck := range resp.Result().Cookies() {
		if ck.Name != c.site.Server.Cookie.Name {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return c
}

// LoggedIn reports whether the client carries a session cookie.
func (c *Client) LoggedIn() bool { return c.cookie != nil }

// Get sends a GET request.
func (c *Client) Get(path string) *Response {
	return c.Do(http.MethodGet, path, nil)
}

// Post sends an urlencoded form.
func (c *Client) Post(path string, form url.Values) *Response {
	if form == nil {
		form = url.Values{}
	}
	return c.Do(http.MethodPost, path, form)
}

// Delete sends a DELETE request.
func (c *Client) Delete(path string) *Response {
	return c.Do(http.MethodDelete, path, nil)
}

// Do sends a request with an optional form body.
func (c *Client) Do(method, path string, form url.Values) *Response {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.site.Server.Handler.ServeHTTP(rec, req)
	return &Response{t: c.site.t, ResponseRecorder: rec}
}

/* ───────── responses ───────── */

// Response is a recorded response with page-context helpers.
type Response struct {
	t testing.TB
	*httptest.ResponseRecorder
}

// Location returns the redirect target.
func (r *Response) Location() string {
	return r.Header().Get("Location")
}

// Context returns the top-level keys of the page context.
func (r *Response) Context() map[string]json.RawMessage {
	r.t.Helper()
	var ctx map[string]json.RawMessage
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &ctx), "body: %s", r.Body.String())
	return ctx
}

// Has reports whether the page context carries a non-null key.
func (r *Response) Has(key string) bool {
	raw, ok := r.Context()[key]
	return ok && string(raw) != "null"
}

// Decode unmarshals the page context value under key into dst.
func (r *Response) Decode(key string, dst any) {
	r.t.Helper()
	raw, ok := r.Context()[key]
	require.True(r.t, ok, "page context has no %q: %s", key, r.Body.String())
	require.NoError(r.t, json.Unmarshal(raw, dst))
}

// FormErrors returns the errors of the form in the page context.
func (r *Response) FormErrors() map[string][]string {
	r.t.Helper()
	var f struct {
		Errors map[string][]string `json:"errors"`
	}
	r.Decode("form", &f)
	return f.Errors
}
