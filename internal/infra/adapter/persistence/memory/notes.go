package memory

import (
	"context"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

type noteRepo struct{ s *Store }

func (r *noteRepo) ListByAuthor(_ context.Context, authorID int64) ([]*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Note, 0)
	for _, id := range sortedIDs(r.s.notes) {
		n := r.s.notes[id]
		if n.AuthorID == authorID {
			out = append(out, &n)
		}
	}
	return out, nil
}

func (r *noteRepo) GetBySlug(_ context.Context, slug string) (*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, n := range r.s.notes {
		if n.Slug == slug {
			return &n, nil
		}
	}
	return nil, nil
}

func (r *noteRepo) ExistsBySlug(_ context.Context, slug string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.slugTaken(slug, excludeID), nil
}

// slugTaken enforces the unique index. Caller holds r.s.mu.
func (r *noteRepo) slugTaken(slug string, excludeID int64) bool {
	for id, n := range r.s.notes {
		if id != excludeID && n.Slug == slug {
			return true
		}
	}
	return false
}

func (r *noteRepo) Create(_ context.Context, n *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(n.Slug, 0) {
		return repository.ErrDuplicate
	}
	n.ID = r.s.nextNoteID
	r.s.nextNoteID++
	r.s.notes[n.ID] = *n
	return nil
}

func (r *noteRepo) Update(_ context.Context, n *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.notes[n.ID]
	if !ok {
		return nil
	}
	if r.slugTaken(n.Slug, n.ID) {
		return repository.ErrDuplicate
	}
	stored.Title, stored.Text, stored.Slug = n.Title, n.Text, n.Slug
	r.s.notes[n.ID] = stored
	return nil
}

func (r *noteRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.notes, id)
	return nil
}

func (r *noteRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.notes)), nil
}
