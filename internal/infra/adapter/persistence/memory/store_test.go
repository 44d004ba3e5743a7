package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/infra/adapter/persistence/memory"
	"newsnotes/internal/repository"
)

func TestNews_ListPageOrdersByDateDesc(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	today := entity.Today(time.Now())

	for i := 0; i < 5; i++ {
		require.NoError(t, store.News().Create(ctx, &entity.News{
			Title: "n", Date: today.AddDate(0, 0, -i*2+3),
		}))
	}

	page, err := store.News().ListPage(ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].News.Date.After(page[i-1].News.Date))
	}

	rest, err := store.News().ListPage(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestComments_ListByNewsOrdersByCreatedAsc(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	author := &entity.User{Username: "author"}
	require.NoError(t, store.Users().Create(ctx, author))

	base := time.Now()
	for _, offset := range []int{3, 1, 2} {
		require.NoError(t, store.Comments().Create(ctx, &entity.Comment{
			NewsID: 1, AuthorID: author.ID, Text: "c",
			CreatedAt: base.Add(time.Duration(offset) * time.Hour),
		}))
	}

	got, err := store.Comments().ListByNews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.Before(got[i].CreatedAt))
	}
	assert.Equal(t, "author", got[0].AuthorName)
}

func TestNotes_UniqueSlug(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	first := &entity.Note{Title: "a", Slug: "same", AuthorID: 1}
	require.NoError(t, store.Notes().Create(ctx, first))

	err := store.Notes().Create(ctx, &entity.Note{Title: "b", Slug: "same", AuthorID: 2})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	taken, err := store.Notes().ExistsBySlug(ctx, "same", first.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a note does not clash with itself")
}

func TestUsers_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Users().Create(ctx, &entity.User{Username: "bob"}))
	assert.ErrorIs(t, store.Users().Create(ctx, &entity.User{Username: "bob"}), repository.ErrDuplicate)
}
