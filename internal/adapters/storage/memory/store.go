package memory

import (
	"context"
	"sync"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"
)

// Store guarda usuarios, perfiles y posts detrás de un único RWMutex, así
// DeleteAccount es atómico. Lecturas y escrituras copian los slices.
type Store struct {
	mu sync.RWMutex

	users    map[string]users.User
	emails   map[string]string // email -> user id
	profiles map[string]profiles.Profile
	posts    map[string]posts.Post
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]users.User),
		emails:   make(map[string]string),
		profiles: make(map[string]profiles.Profile),
		posts:    make(map[string]posts.Post),
	}
}

func (s *Store) Users() users.Repository       { return &userRepo{s: s} }
func (s *Store) Profiles() profiles.Repository { return &profileRepo{s: s} }
func (s *Store) Posts() posts.Repository       { return &postRepo{s: s} }

// DeleteAccount borra posts, perfil y usuario bajo el mismo lock.
func (s *Store) DeleteAccount(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
		}
	}
	delete(s.profiles, userID)
	if u, ok := s.users[userID]; ok {
		delete(s.emails, u.Email)
		delete(s.users, userID)
	}
	return nil
}
