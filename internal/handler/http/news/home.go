package news

import (
	"context"
	"errors"
	"net/http"

	"newsnotes/internal/common/pagination"
	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/respond"
	newsUC "newsnotes/internal/usecase/news"
)

// Reader is the read side of the news application.
type Reader interface {
	Home(ctx context.Context, page int) (*newsUC.HomePage, error)
	Detail(ctx context.Context, id int64) (*newsUC.DetailPage, error)
}

type homePage struct {
	ObjectList []NewsDTO           `json:"object_list"`
	Pagination pagination.Metadata `json:"pagination"`
	User       *auth.UserView      `json:"user"`
}

// HomeHandler renders the news home page.
type HomeHandler struct{ Svc Reader }

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r)
	if err != nil {
		respond.NotFound(w)
		return
	}

	res, err := h.Svc.Home(r.Context(), page)
	if err != nil {
		if errors.Is(err, newsUC.ErrInvalidPage) {
			respond.NotFound(w)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.Page(w, homePage{
		ObjectList: newsListDTO(res.News),
		Pagination: res.Pagination,
		User:       auth.ViewOf(auth.CurrentUser(r.Context())),
	})
}
