package memory

import (
	"context"
	"sort"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

type newsRepo struct{ s *Store }

func (r *newsRepo) ListPage(_ context.Context, offset, limit int) ([]repository.NewsWithCommentCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]entity.News, 0, len(r.s.news))
	for _, n := range r.s.news {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})

	counts := make(map[int64]int64, len(all))
	for _, c := range r.s.comments {
		counts[c.NewsID]++
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := len(all)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]repository.NewsWithCommentCount, 0, end-offset)
	for _, n := range all[offset:end] {
		n := n
		out = append(out, repository.NewsWithCommentCount{News: &n, CommentCount: counts[n.ID]})
	}
	return out, nil
}

func (r *newsRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.news)), nil
}

func (r *newsRepo) Get(_ context.Context, id int64) (*entity.News, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.news[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *newsRepo) Create(_ context.Context, n *entity.News) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = r.s.nextNewsID
	r.s.nextNewsID++
	r.s.news[n.ID] = *n
	return nil
}
