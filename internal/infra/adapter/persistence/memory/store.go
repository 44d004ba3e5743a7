// Package memory provides in-process implementations of the repository interfaces.
// A single Store backs all four repositories so joins (comment author names,
// news comment counts) see a consistent snapshot. It is used by the HTTP test
// suites and by STORAGE_DRIVER=memory for local runs.
package memory

import (
	"sort"
	"sync"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// Store holds every table. The zero value is not usable; call NewStore.
type Store struct {
	mu sync.RWMutex

	news     map[int64]entity.News
	comments map[int64]entity.Comment
	notes    map[int64]entity.Note
	users    map[int64]entity.User

	nextNewsID, nextCommentID, nextNoteID, nextUserID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		news:          map[int64]entity.News{},
		comments:      map[int64]entity.Comment{},
		notes:         map[int64]entity.Note{},
		users:         map[int64]entity.User{},
		nextNewsID:    1,
		nextCommentID: 1,
		nextNoteID:    1,
		nextUserID:    1,
	}
}

// News, Comments, Notes and Users return repositories sharing s.
func (s *Store) News() repository.NewsRepository       { return &newsRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }
func (s *Store) Notes() repository.NoteRepository       { return &noteRepo{s} }
func (s *Store) Users() repository.UserRepository       { return &userRepo{s} }

// withAuthor fills AuthorName. Caller holds s.mu.
func (s *Store) withAuthor(c entity.Comment) *entity.Comment {
	c.AuthorName = s.users[c.AuthorID].Username
	return &c
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
