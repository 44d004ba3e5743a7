// Package server assembles the site: storage, use cases, page handlers and
// the middleware chain.
package server

import (
	"log/slog"
	"net/http"

	"newsnotes/internal/config"
	hhttp "newsnotes/internal/handler/http"
	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/news"
	"newsnotes/internal/handler/http/notes"
	"newsnotes/internal/handler/http/requestid"
	"newsnotes/internal/handler/http/responsewriter"
	"newsnotes/internal/observability/tracing"
	authservice "newsnotes/internal/service/auth"
	commentUC "newsnotes/internal/usecase/comment"
	newsUC "newsnotes/internal/usecase/news"
	noteUC "newsnotes/internal/usecase/note"
)

// Server is the assembled site.
type Server struct {
	Handler  http.Handler
	Accounts *authservice.Service
	Cookie   auth.CookieConfig
}

// Options tweak New. The zero value is fine for production.
type Options struct {
	Version string
	Logger  *slog.Logger
	// AuthOptions are passed to the auth service, e.g. a cheaper hasher in tests.
	AuthOptions []authservice.Option
}

// New wires every page of the site on top of st.
func New(cfg *config.Config, st *Storage, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	accounts := authservice.NewService(st.Users, cfg.Session.Secret, cfg.Session.TTL, opts.AuthOptions...)
	cookie := auth.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
	throttle := auth.NewThrottle(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)

	newsSvc := &newsUC.Service{
		News:            st.News,
		Comments:        st.Comments,
		CountOnHomePage: cfg.News.CountOnHomePage,
	}
	commentSvc := &commentUC.Service{
		News:              st.News,
		Comments:          st.Comments,
		BannedWords:       cfg.News.BannedWords,
		BannedWordWarning: cfg.News.BannedWordWarning,
	}
	noteSvc := &noteUC.Service{
		Notes:       st.Notes,
		SlugWarning: cfg.Notes.SlugWarning,
	}

	mux := http.NewServeMux()
	news.Register(mux, newsSvc, commentSvc)
	notes.Register(mux, noteSvc)
	auth.Register(mux, accounts, cookie, throttle)
	hhttp.RegisterHealth(mux, st.DB, opts.Version)
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	handler := hhttp.Chain(mux,
		responsewriter.Track,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Metrics,
		hhttp.Recover,
		hhttp.SecurityHeaders(cfg.HTTP.CSPReportOnly),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.RequestTimeout(cfg.HTTP.RequestTimeout),
		auth.Session(accounts, cookie),
		responsewriter.CaptureRoute,
	)

	return &Server{Handler: handler, Accounts: accounts, Cookie: cookie}
}
