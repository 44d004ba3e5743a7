package server_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/handler/http/news"
	"newsnotes/internal/handler/http/urls"
	"newsnotes/internal/testutil/fixtures"
)

func TestNewsContent_HomeCountCapped(t *testing.T) {
	site := fixtures.NewSite(t)
	limit := site.Config.News.CountOnHomePage
	site.NewsList(limit + 1)

	resp := site.Client().Get(urls.MustReverse(urls.NewsHome))
	require.Equal(t, 200, resp.Code)

	var list []news.NewsDTO
	resp.Decode("object_list", &list)
	assert.Len(t, list, limit)
}

func TestNewsContent_HomePageBeyondEndIsEmpty(t *testing.T) {
	site := fixtures.NewSite(t)
	site.NewsList(3)

	for _, page := range []string{"2", "9223372036854775807"} {
		t.Run(page, func(t *testing.T) {
			resp := site.Client().Get(urls.MustReverse(urls.NewsHome) + "?page=" + page)
			require.Equal(t, 200, resp.Code)

			var list []news.NewsDTO
			resp.Decode("object_list", &list)
			assert.Empty(t, list)
		})
	}
}

func TestNewsContent_HomeOrderedByDateDesc(t *testing.T) {
	site := fixtures.NewSite(t)
	site.NewsList(site.Config.News.CountOnHomePage + 1)

	var list []news.NewsDTO
	site.Client().Get(urls.MustReverse(urls.NewsHome)).Decode("object_list", &list)

	dates := make([]string, len(list))
	for i, n := range list {
		dates[i] = n.Date
	}
	sorted := append([]string(nil), dates...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	assert.Equal(t, sorted, dates)
}

func TestNewsContent_CommentsOrderedByCreation(t *testing.T) {
	site := fixtures.NewSite(t)
	author := site.User("Комментатор")
	n := site.News("Тест", "Просто текст.")
	now := time.Now()
	for i := 0; i < 10; i++ {
		site.CommentAt(n, author, "Tекст", now.Add(time.Duration(i)*24*time.Hour))
	}

	resp := site.Client().Get(urls.MustReverse(urls.NewsDetail, n.ID))
	require.Equal(t, 200, resp.Code)

	var comments []news.CommentDTO
	resp.Decode("comments", &comments)
	require.Len(t, comments, 10)
	for i := 1; i < len(comments); i++ {
		assert.False(t, comments[i].Created.Before(comments[i-1].Created), "comment %d out of order", i)
	}
}

func TestNewsContent_FormOnlyForAuthenticated(t *testing.T) {
	site := fixtures.NewSite(t)
	n := site.News("Тест", "Просто текст.")
	path := urls.MustReverse(urls.NewsDetail, n.ID)

	assert.False(t, site.Client().Get(path).Has("form"))
	assert.True(t, site.LoginAs(site.User("Автор")).Get(path).Has("form"))
}
