package news

import (
	"net/http"

	"newsnotes/internal/handler/http/auth"
	"newsnotes/internal/handler/http/urls"
)

// Register mounts the news pages. Home and detail are public; posting a
// comment and the comment pages require a logged-in user.
func Register(mux *http.ServeMux, svc Reader, comments Commenter) {
	detail := DetailHandler{Svc: svc, Comments: comments}
	edit := auth.LoginRequired(EditCommentHandler{Svc: comments})
	del := auth.LoginRequired(DeleteCommentHandler{Svc: comments})

	mux.Handle(urls.Pattern(http.MethodGet, urls.NewsHome), HomeHandler{Svc: svc})
	mux.Handle(urls.Pattern(http.MethodGet, urls.NewsDetail), detail)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NewsDetail), auth.LoginRequired(detail))
	mux.Handle(urls.Pattern(http.MethodGet, urls.NewsEdit), edit)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NewsEdit), edit)
	mux.Handle(urls.Pattern(http.MethodGet, urls.NewsDelete), del)
	mux.Handle(urls.Pattern(http.MethodPost, urls.NewsDelete), del)
	mux.Handle(urls.Pattern(http.MethodDelete, urls.NewsDelete), del)
}
