package memory

import (
	"context"
	"sort"

	"newsnotes/internal/domain/entity"
)

type commentRepo struct{ s *Store }

func (r *commentRepo) ListByNews(_ context.Context, newsID int64) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.NewsID == newsID {
			out = append(out, r.s.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *commentRepo) Get(_ context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	return r.s.withAuthor(c), nil
}

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextCommentID
	r.s.nextCommentID++
	stored := *c
	stored.AuthorName = ""
	r.s.comments[c.ID] = stored
	return nil
}

func (r *commentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.comments[c.ID]
	if !ok {
		return nil
	}
	stored.Text = c.Text
	r.s.comments[c.ID] = stored
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.comments, id)
	return nil
}

func (r *commentRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.comments)), nil
}
