package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/handler/http/form"
	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/observability/metrics"
	authservice "newsnotes/internal/service/auth"
)

// MsgInvalidLogin is the non-field error of a failed login.
const MsgInvalidLogin = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."

// MsgUsernameTaken is the signup error for an existing username.
const MsgUsernameTaken = "Пользователь с таким именем уже существует."

// Accounts is what the account pages need from the auth service.
type Accounts interface {
	Authenticate(ctx context.Context, creds authservice.Credentials) (*entity.User, error)
	Signup(ctx context.Context, username, password1, password2 string) (*entity.User, error)
	IssueSession(user *entity.User) (string, time.Time, error)
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password,nostrip" validate:"required"`
}

type signupForm struct {
	Username  string `form:"username" validate:"required,max=150"`
	Password1 string `form:"password1,nostrip" validate:"required"`
	Password2 string `form:"password2,nostrip" validate:"required"`
}

type loginPage struct {
	Form *form.Form `json:"form"`
	Next string     `json:"next,omitempty"`
	User *UserView  `json:"user"`
}

/* ───────── login ───────── */

// LoginHandler renders and processes the login form.
type LoginHandler struct {
	Svc      Accounts
	Cookie   CookieConfig
	Throttle *Throttle
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	if r.Method != http.MethodPost {
		respond.Page(w, loginPage{Form: form.New("username", "password"), Next: next, User: ViewOf(CurrentUser(r.Context()))})
		return
	}

	logger := logging.FromContext(r.Context())

	if h.Throttle != nil && !h.Throttle.Allow(clientIP(r)) {
		logger.Warn("login throttled", slog.String("client_ip", clientIP(r)))
		metrics.RecordAuthRequest("login", metrics.ResultThrottled)
		respond.SafeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
		return
	}

	var in loginForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if next == "" {
		next = r.PostForm.Get("next")
	}
	if !f.Valid() {
		metrics.RecordAuthRequest("login", metrics.ResultRejected)
		respond.Page(w, loginPage{Form: f, Next: next})
		return
	}

	user, err := h.Svc.Authenticate(r.Context(), authservice.Credentials{Username: in.Username, Password: in.Password})
	if errors.Is(err, authservice.ErrInvalidCredentials) {
		logger.Warn("login failed", slog.String("username", in.Username))
		metrics.RecordAuthRequest("login", metrics.ResultRejected)
		f.AddError(form.NonFieldErrors, MsgInvalidLogin)
		respond.Page(w, loginPage{Form: f, Next: next})
		return
	}
	if err != nil {
		metrics.RecordAuthRequest("login", metrics.ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	metrics.RecordAuthRequest("login", metrics.ResultSuccess)
	logger.Info("user logged in", slog.Int64("user_id", user.ID))

	if !urls.IsSafeRedirect(next) {
		next = urls.MustReverse(urls.NewsHome)
	}
	respond.Redirect(w, r, next)
}

func (h LoginHandler) startSession(w http.ResponseWriter, r *http.Request, user *entity.User) bool {
	token, exp, err := h.Svc.IssueSession(user)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return false
	}
	h.Cookie.Set(w, token, exp)
	return true
}

/* ───────── logout ───────── */

// LogoutHandler clears the session and renders the logged-out page.
type LogoutHandler struct {
	Cookie CookieConfig
}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if u := CurrentUser(r.Context()); u != nil {
		logging.FromContext(r.Context()).Info("user logged out", slog.Int64("user_id", u.ID))
	}
	h.Cookie.Clear(w)
	respond.Page(w, map[string]any{"logged_out": true, "user": nil})
}

/* ───────── signup ───────── */

// SignupHandler renders and processes the registration form. A new user
// is logged in straight away and sent to the news home page.
type SignupHandler struct {
	Svc    Accounts
	Cookie CookieConfig
}

func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Page(w, loginPage{Form: form.New("username", "password1", "password2"), User: ViewOf(CurrentUser(r.Context()))})
		return
	}

	var in signupForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if !f.Valid() {
		metrics.RecordAuthRequest("signup", metrics.ResultRejected)
		respond.Page(w, loginPage{Form: f})
		return
	}

	user, err := h.Svc.Signup(r.Context(), in.Username, in.Password1, in.Password2)
	switch {
	case errors.Is(err, authservice.ErrUsernameTaken):
		f.AddError("username", MsgUsernameTaken)
	case f.AddValidationError(err):
	case err != nil:
		metrics.RecordAuthRequest("signup", metrics.ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if !f.Valid() {
		metrics.RecordAuthRequest("signup", metrics.ResultRejected)
		respond.Page(w, loginPage{Form: f})
		return
	}

	if !(LoginHandler{Svc: h.Svc, Cookie: h.Cookie}).startSession(w, r, user) {
		return
	}
	metrics.RecordAuthRequest("signup", metrics.ResultSuccess)
	respond.Redirect(w, r, urls.MustReverse(urls.NewsHome))
}

// Register mounts the account pages.
func Register(mux *http.ServeMux, svc Accounts, cookie CookieConfig, throttle *Throttle) {
	mux.Handle(urls.Pattern(http.MethodGet, urls.UsersLogin), LoginHandler{Svc: svc, Cookie: cookie})
	mux.Handle(urls.Pattern(http.MethodPost, urls.UsersLogin), LoginHandler{Svc: svc, Cookie: cookie, Throttle: throttle})
	mux.Handle(urls.Pattern(http.MethodGet, urls.UsersLogout), LogoutHandler{Cookie: cookie})
	mux.Handle(urls.Pattern(http.MethodPost, urls.UsersLogout), LogoutHandler{Cookie: cookie})
	mux.Handle(urls.Pattern(http.MethodGet, urls.UsersSignup), SignupHandler{Svc: svc, Cookie: cookie})
	mux.Handle(urls.Pattern(http.MethodPost, urls.UsersSignup), SignupHandler{Svc: svc, Cookie: cookie})
}
