package news

import (
	"errors"
	"log/slog"
	"net/http"

	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/form"
	"newsnotes/internal/handler/http/pathutil"
	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/observability/metrics"
	commentUC "newsnotes/internal/usecase/comment"
)

type commentPage struct {
	Comment CommentDTO     `json:"comment"`
	Form    *form.Form     `json:"form,omitempty"`
	User    *auth.UserView `json:"user"`
}

// notFound reports whether err means the comment is missing or foreign.
func notFound(err error) bool {
	return errors.Is(err, commentUC.ErrCommentNotFound) ||
		errors.Is(err, commentUC.ErrInvalidCommentID) ||
		errors.Is(err, commentUC.ErrUnauthenticated)
}

/* ───────── edit ───────── */

// EditCommentHandler shows and processes the edit form of a comment.
type EditCommentHandler struct{ Svc Commenter }

func (h EditCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.NotFound(w)
		return
	}
	user := auth.CurrentUser(r.Context())

	c, err := h.Svc.Get(r.Context(), id, user)
	if err != nil {
		if notFound(err) {
			if r.Method == http.MethodPost {
				metrics.RecordCommentMutation("update", metrics.ResultForbidden)
			}
			respond.NotFound(w)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if r.Method != http.MethodPost {
		f := form.New("text")
		f.Fields["text"] = c.Text
		respond.Page(w, commentPage{Comment: commentDTO(c), Form: f, User: auth.ViewOf(user)})
		return
	}

	var in CommentForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if f.Valid() {
		_, err = h.Svc.Update(r.Context(), commentUC.UpdateInput{ID: id, Author: user, Text: in.Text})
		switch {
		case err == nil:
		case notFound(err):
			metrics.RecordCommentMutation("update", metrics.ResultForbidden)
			respond.NotFound(w)
			return
		case f.AddValidationError(err):
		default:
			metrics.RecordCommentMutation("update", metrics.ResultError)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if !f.Valid() {
		metrics.RecordCommentMutation("update", metrics.ResultRejected)
		respond.Page(w, commentPage{Comment: commentDTO(c), Form: f, User: auth.ViewOf(user)})
		return
	}

	metrics.RecordCommentMutation("update", metrics.ResultSuccess)
	logging.FromContext(r.Context()).Info("comment updated", slog.Int64("comment_id", id))
	respond.Redirect(w, r, commentsURL(c.NewsID))
}

/* ───────── delete ───────── */

// DeleteCommentHandler shows the delete confirmation of a comment and
// removes it on POST or DELETE.
type DeleteCommentHandler struct{ Svc Commenter }

func (h DeleteCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.NotFound(w)
		return
	}
	user := auth.CurrentUser(r.Context())

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		c, err := h.Svc.Get(r.Context(), id, user)
		if err != nil {
			if notFound(err) {
				respond.NotFound(w)
				return
			}
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		respond.Page(w, commentPage{Comment: commentDTO(c), User: auth.ViewOf(user)})
		return
	}

	newsID, err := h.Svc.Delete(r.Context(), id, user)
	if err != nil {
		if notFound(err) {
			metrics.RecordCommentMutation("delete", metrics.ResultForbidden)
			respond.NotFound(w)
			return
		}
		metrics.RecordCommentMutation("delete", metrics.ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordCommentMutation("delete", metrics.ResultSuccess)
	logging.FromContext(r.Context()).Info("comment deleted", slog.Int64("comment_id", id))
	respond.Redirect(w, r, commentsURL(newsID))
}
