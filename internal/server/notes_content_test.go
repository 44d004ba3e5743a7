package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/handler/http/notes"
	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/testutil/fixtures"
)

func TestNotesContent_ListShowsOnlyOwnNotes(t *testing.T) {
	site := fixtures.NewSite(t)
	author := site.User("Автор")
	reader := site.User("Читатель")
	note := site.Note(author, "Заголовок", "Текст", "note-slug")

	tests := []struct {
		name   string
		client *fixtures.Client
		inList bool
	}{
		{"author", site.LoginAs(author), true},
		{"reader", site.LoginAs(reader), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.client.Get(urls.MustReverse(urls.NotesList))
			require.Equal(t, 200, resp.Code)

			var list []notes.NoteDTO
			resp.Decode("object_list", &list)
			found := false
			for _, n := range list {
				if n.ID == note.ID {
					found = true
				}
			}
			assert.Equal(t, tt.inList, found)
		})
	}
}

func TestNotesContent_FormPages(t *testing.T) {
	site := fixtures.NewSite(t)
	author := site.User("Автор")
	site.Note(author, "Заголовок", "Текст", "note-slug")
	client := site.LoginAs(author)

	for _, path := range []string{
		urls.MustReverse(urls.NotesAdd),
		urls.MustReverse(urls.NotesEdit, "note-slug"),
	} {
		t.Run(path, func(t *testing.T) {
			resp := client.Get(path)
			require.Equal(t, 200, resp.Code)
			assert.True(t, resp.Has("form"))
		})
	}
}
