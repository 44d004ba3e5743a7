// Package notes provides the HTTP handlers of the personal notes
// application. Everything except the home page requires a logged-in user,
// and a user only ever sees their own notes.
package notes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/form"
	"newsnotes/internal/handler/http/pathutil"
	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/observability/metrics"
	noteUC "newsnotes/internal/usecase/note"
)

// Notebook is the note use case service.
type Notebook interface {
	List(ctx context.Context, author *entity.User) ([]*entity.Note, error)
	Create(ctx context.Context, in noteUC.Input) (*entity.Note, error)
	Get(ctx context.Context, slug string, author *entity.User) (*entity.Note, error)
	Update(ctx context.Context, slug string, in noteUC.Input) (*entity.Note, error)
	Delete(ctx context.Context, slug string, author *entity.User) error
}

// NoteForm is the add and edit form.
type NoteForm struct {
	Title string `form:"title" validate:"required,max=100"`
	Text  string `form:"text" validate:"required"`
	Slug  string `form:"slug" validate:"omitempty,max=100,slug"`
}

var formFields = []string{"title", "text", "slug"}

// NoteDTO is a note in page contexts.
type NoteDTO struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	Slug    string    `json:"slug"`
	Author  int64     `json:"author"`
	Created time.Time `json:"created"`
}

func noteDTO(n *entity.Note) NoteDTO {
	return NoteDTO{ID: n.ID, Title: n.Title, Text: n.Text, Slug: n.Slug, Author: n.AuthorID, Created: n.CreatedAt}
}

type listPage struct {
	ObjectList []NoteDTO      `json:"object_list"`
	User       *auth.UserView `json:"user"`
}

type notePage struct {
	Note *NoteDTO       `json:"note,omitempty"`
	Form *form.Form     `json:"form,omitempty"`
	User *auth.UserView `json:"user"`
}

func notFound(err error) bool {
	return errors.Is(err, noteUC.ErrNoteNotFound) || errors.Is(err, noteUC.ErrUnauthenticated)
}

func successURL() string {
	return urls.MustReverse(urls.NotesSuccess)
}

/* ───────── static pages ───────── */

// HomeHandler renders the public landing page of the notes application.
type HomeHandler struct{}

func (HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.Page(w, notePage{User: auth.ViewOf(auth.CurrentUser(r.Context()))})
}

// SuccessHandler renders the page shown after a note was saved or removed.
type SuccessHandler struct{}

func (SuccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.Page(w, map[string]any{"success": true, "user": auth.ViewOf(auth.CurrentUser(r.Context()))})
}

/* ───────── list / detail ───────── */

// ListHandler renders the notes of the current user.
type ListHandler struct{ Svc Notebook }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	list, err := h.Svc.List(r.Context(), user)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, noteDTO(n))
	}
	respond.Page(w, listPage{ObjectList: out, User: auth.ViewOf(user)})
}

// DetailHandler renders one note of the current user.
type DetailHandler struct{ Svc Notebook }

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}
	dto := noteDTO(n)
	respond.Page(w, notePage{Note: &dto, User: auth.ViewOf(auth.CurrentUser(r.Context()))})
}

func (h DetailHandler) lookup(w http.ResponseWriter, r *http.Request) (*entity.Note, bool) {
	slug, err := pathutil.PathString(r, "slug")
	if err != nil {
		respond.NotFound(w)
		return nil, false
	}
	n, err := h.Svc.Get(r.Context(), slug, auth.CurrentUser(r.Context()))
	if err != nil {
		if notFound(err) {
			respond.NotFound(w)
			return nil, false
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return n, true
}

/* ───────── add ───────── */

// AddHandler shows and processes the new note form.
type AddHandler struct{ Svc Notebook }

func (h AddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if r.Method != http.MethodPost {
		respond.Page(w, notePage{Form: form.New(formFields...), User: auth.ViewOf(user)})
		return
	}

	var in NoteForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if f.Valid() {
		n, err := h.Svc.Create(r.Context(), noteUC.Input{Title: in.Title, Text: in.Text, Slug: in.Slug, Author: user})
		switch {
		case err == nil:
			metrics.RecordNoteMutation("create", metrics.ResultSuccess)
			logging.FromContext(r.Context()).Info("note created", slog.String("slug", n.Slug))
			respond.Redirect(w, r, successURL())
			return
		case f.AddValidationError(err):
		default:
			metrics.RecordNoteMutation("create", metrics.ResultError)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	metrics.RecordNoteMutation("create", metrics.ResultRejected)
	respond.Page(w, notePage{Form: f, User: auth.ViewOf(user)})
}

/* ───────── edit ───────── */

// EditHandler shows and processes the edit form of a note.
type EditHandler struct{ Svc Notebook }

func (h EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	n, ok := DetailHandler(h).lookup(w, r)
	if !ok {
		if r.Method == http.MethodPost {
			metrics.RecordNoteMutation("update", metrics.ResultForbidden)
		}
		return
	}
	dto := noteDTO(n)

	if r.Method != http.MethodPost {
		f := form.New(formFields...)
		f.Fields["title"] = n.Title
		f.Fields["text"] = n.Text
		f.Fields["slug"] = n.Slug
		respond.Page(w, notePage{Note: &dto, Form: f, User: auth.ViewOf(user)})
		return
	}

	var in NoteForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if f.Valid() {
		_, err := h.Svc.Update(r.Context(), n.Slug, noteUC.Input{Title: in.Title, Text: in.Text, Slug: in.Slug, Author: user})
		switch {
		case err == nil:
			metrics.RecordNoteMutation("update", metrics.ResultSuccess)
			logging.FromContext(r.Context()).Info("note updated", slog.Int64("note_id", n.ID))
			respond.Redirect(w, r, successURL())
			return
		case notFound(err):
			metrics.RecordNoteMutation("update", metrics.ResultForbidden)
			respond.NotFound(w)
			return
		case f.AddValidationError(err):
		default:
			metrics.RecordNoteMutation("update", metrics.ResultError)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	metrics.RecordNoteMutation("update", metrics.ResultRejected)
	respond.Page(w, notePage{Note: &dto, Form: f, User: auth.ViewOf(user)})
}

/* ───────── delete ───────── */

// DeleteHandler shows the delete confirmation of a note and removes it on
// POST or DELETE.
type DeleteHandler struct{ Svc Notebook }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		DetailHandler(h).ServeHTTP(w, r)
		return
	}

	slug, err := pathutil.PathString(r, "slug")
	if err != nil {
		respond.NotFound(w)
		return
	}
	if err := h.Svc.Delete(r.Context(), slug, auth.CurrentUser(r.Context())); err != nil {
		if notFound(err) {
			metrics.RecordNoteMutation("delete", metrics.ResultForbidden)
			respond.NotFound(w)
			return
		}
		metrics.RecordNoteMutation("delete", metrics.ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordNoteMutation("delete", metrics.ResultSuccess)
	logging.FromContext(r.Context()).Info("note deleted", slog.String("slug", slug))
	respond.Redirect(w, r, successURL())
}

// Register mounts the notes pages.
func Register(mux *http.ServeMux, svc Notebook) {
	list := auth.LoginRequired(ListHandler{Svc: svc})
	add := auth.LoginRequired(AddHandler{Svc: svc})
	success := auth.LoginRequired(SuccessHandler{})
	detail := auth.LoginRequired(DetailHandler{Svc: svc})
	edit := auth.LoginRequired(EditHandler{Svc: svc})
	del := auth.LoginRequired(DeleteHandler{Svc: svc})

	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesHome), HomeHandler{})
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesList), list)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesAdd), add)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NotesAdd), add)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesSuccess), success)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesDetail), detail)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesEdit), edit)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NotesEdit), edit)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NotesDelete), del)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NotesDelete), del)
	mux.Handle(urls.Pattern(http.MethodDelete, urls.NotesDelete), del)
}
