package server_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/testutil/fixtures"
)

func TestNotesRoutes_PublicPages(t *testing.T) {
	site := fixtures.NewSite(t)

	for _, name := range []string{urls.NotesHome, urls.UsersLogin, urls.UsersLogout, urls.UsersSignup} {
		t.Run(name, func(t *testing.T) {
			resp := site.Client().Get(urls.MustReverse(name))
			assert.Equal(t, http.StatusOK, resp.Code)
		})
	}
}

func TestNotesRoutes_UserPages(t *testing.T) {
	site := fixtures.NewSite(t)
	client := site.LoginAs(site.User("Читатель"))

	for _, name := range []string{urls.NotesList, urls.NotesAdd, urls.NotesSuccess} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, client.Get(urls.MustReverse(name)).Code)
		})
	}
}

func TestNotesRoutes_NotePagesByUser(t *testing.T) {
	site := fixtures.NewSite(t)
	author := site.User("Автор")
	reader := site.User("Читатель")
	note := site.Note(author, "Заголовок", "Текст", "note-slug")

	tests := []struct {
		name   string
		client *fixtures.Client
		want   int
	}{
		{"author", site.LoginAs(author), http.StatusOK},
		{"reader", site.LoginAs(reader), http.StatusNotFound},
	}
	for _, tt := range tests {
		for _, route := range []string{urls.NotesDetail, urls.NotesEdit, urls.NotesDelete} {
			t.Run(tt.name+"/"+route, func(t *testing.T) {
				assert.Equal(t, tt.want, tt.client.Get(urls.MustReverse(route, note.Slug)).Code)
			})
		}
	}
}

func TestNotesRoutes_AnonymousRedirectsToLogin(t *testing.T) {
	site := fixtures.NewSite(t)
	note := site.Note(site.User("Автор"), "Заголовок", "Текст", "note-slug")

	paths := []string{
		urls.MustReverse(urls.NotesList),
		urls.MustReverse(urls.NotesAdd),
		urls.MustReverse(urls.NotesSuccess),
		urls.MustReverse(urls.NotesDetail, note.Slug),
		urls.MustReverse(urls.NotesEdit, note.Slug),
		urls.MustReverse(urls.NotesDelete, note.Slug),
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := site.Client().Get(path)
			assert.Equal(t, http.StatusFound, resp.Code)
			assert.Equal(t, "/auth/login/?next="+path, resp.Location())
		})
	}
}
