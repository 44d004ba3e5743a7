package news

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/form"
	"newsnotes/internal/handler/http/pathutil"
	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/observability/metrics"
	commentUC "newsnotes/internal/usecase/comment"
	newsUC "newsnotes/internal/usecase/news"
)

// Commenter is the write side of the news application.
type Commenter interface {
	Create(ctx context.Context, in commentUC.CreateInput) (*entity.Comment, error)
	Get(ctx context.Context, id int64, author *entity.User) (*entity.Comment, error)
	Update(ctx context.Context, in commentUC.UpdateInput) (*entity.Comment, error)
	Delete(ctx context.Context, id int64, author *entity.User) (int64, error)
}

// CommentForm is the comment form of the detail and edit pages.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

type detailPage struct {
	News     NewsDTO        `json:"news"`
	Comments []CommentDTO   `json:"comments"`
	Form     *form.Form     `json:"form,omitempty"`
	User     *auth.UserView `json:"user"`
}

// DetailHandler renders a news item with its comments. Authenticated
// users also get the comment form; POST creates a comment.
type DetailHandler struct {
	Svc      Reader
	Comments Commenter
}

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.NotFound(w)
		return
	}

	if r.Method == http.MethodPost {
		h.create(w, r, id)
		return
	}

	user := auth.CurrentUser(r.Context())
	var f *form.Form
	if user != nil {
		f = form.New("text")
	}
	h.render(w, r, id, f)
}

func (h DetailHandler) render(w http.ResponseWriter, r *http.Request, id int64, f *form.Form) {
	page, err := h.Svc.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, newsUC.ErrNewsNotFound) || errors.Is(err, newsUC.ErrInvalidNewsID) {
			respond.NotFound(w)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.Page(w, detailPage{
		News:     newsDTO(page.News),
		Comments: commentListDTO(page.Comments),
		Form:     f,
		User:     auth.ViewOf(auth.CurrentUser(r.Context())),
	})
}

func (h DetailHandler) create(w http.ResponseWriter, r *http.Request, newsID int64) {
	var in CommentForm
	f, err := form.Decode(r, &in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	if !f.Valid() {
		metrics.RecordCommentMutation("create", metrics.ResultRejected)
		h.render(w, r, newsID, f)
		return
	}

	c, err := h.Comments.Create(r.Context(), commentUC.CreateInput{
		NewsID: newsID,
		Author: auth.CurrentUser(r.Context()),
		Text:   in.Text,
	})
	switch {
	case errors.Is(err, commentUC.ErrNewsNotFound):
		respond.NotFound(w)
		return
	case f.AddValidationError(err):
		metrics.RecordCommentMutation("create", metrics.ResultRejected)
		h.render(w, r, newsID, f)
		return
	case err != nil:
		metrics.RecordCommentMutation("create", metrics.ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordCommentMutation("create", metrics.ResultSuccess)
	logging.FromContext(r.Context()).Info("comment created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("news_id", newsID))
	respond.Redirect(w, r, commentsURL(newsID))
}

func commentsURL(newsID int64) string {
	return urls.WithFragment(urls.MustReverse(urls.NewsDetail, newsID), urls.CommentsAnchor)
}
