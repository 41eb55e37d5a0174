package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-vet-reviews/internal/domain/posts"
)

type postRepo struct {
	s *Store
}

func (r *postRepo) Create(ctx context.Context, p posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.s.posts[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.s.posts[p.ID] = p.Clone()
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return posts.Post{}, posts.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepo) Update(ctx context.Context, p posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.posts[p.ID]
	if !ok {
		return posts.ErrNotFound
	}
	if cur.Version != p.Version {
		return posts.ErrVersionConflict
	}
	p = p.Clone()
	p.Version++
	r.s.posts[p.ID] = p
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *postRepo) List(ctx context.Context, f posts.ListFilter) (posts.Page, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]posts.Post, 0)
	for _, p := range r.s.posts {
		if f.UserID == "" || p.UserID == f.UserID {
			matched = append(matched, p)
		}
	}

	// fecha descendente; id como desempate para que las páginas no se solapen
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	out := posts.Page{Count: len(matched), Posts: []posts.Post{}}
	if f.Offset >= len(matched) || f.Offset < 0 {
		return out, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Limit < end-f.Offset {
		end = f.Offset + f.Limit
	}
	for _, p := range matched[f.Offset:end] {
		out.Posts = append(out.Posts, p.Clone())
	}
	return out, nil
}
