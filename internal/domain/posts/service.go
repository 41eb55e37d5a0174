package posts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pet-vet-reviews/internal/domain/users"
	"pet-vet-reviews/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("post not found")
	ErrAuthorNotFound  = errors.New("author not found")
	ErrForbidden       = errors.New("not the post author")
	ErrVersionConflict = errors.New("post version conflict")
)

const (
	AllPageSize  = 5
	UserPageSize = 10

	// maxAttempts acota los reintentos de read-modify-write ante ErrVersionConflict.
	maxAttempts = 3
)

type Options struct {
	// LegacyClearCompare hace que ClearToggle falle siempre con ErrInvalidState
	// para spay_neutered y GI_stasis, como esperan clientes antiguos.
	LegacyClearCompare bool
}

type Service struct {
	repo        Repository
	users       UserLookup
	legacyClear bool
	now         func() time.Time
}

func NewService(repo Repository, users UserLookup, opts Options) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		legacyClear: opts.LegacyClearCompare,
		now:         time.Now,
	}
}

type CreateInput struct {
	YelpID    string
	VetName   string
	PostTitle string
	ImageURL  string
	Address   string
	Phone     string

	// Flags siembra la lista correspondiente con el autor.
	Flags map[ToggleKind]bool

	// Date opcional; si es nil se usa la hora actual.
	Date *time.Time
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Post, error) {
	yelpID := strings.TrimSpace(in.YelpID)
	if yelpID == "" {
		return Post{}, ErrInvalidInput
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Post{}, ErrAuthorNotFound
		}
		return Post{}, fmt.Errorf("lookup author: %w", err)
	}

	created := s.now()
	if in.Date != nil && !in.Date.IsZero() {
		created = *in.Date
	}

	p := Post{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		UserName:  author.UserName,
		YelpID:    yelpID,
		VetName:   strings.TrimSpace(in.VetName),
		PostTitle: strings.TrimSpace(in.PostTitle),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Toggles:   Toggles{}.Clone(),
		CreatedAt: created,
	}
	for _, k := range Kinds {
		if in.Flags[k] {
			p.Toggles[k] = ToggleList{{ID: uuid.NewString(), UserID: author.ID}}
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// List devuelve la página page (base 1) de todos los posts.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	return s.repo.List(ctx, window("", page, AllPageSize))
}

func (s *Service) ListByUser(ctx context.Context, userID string, page int) (Page, error) {
	return s.repo.List(ctx, window(userID, page, UserPageSize))
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	if strings.TrimSpace(id) == "" {
		return Post{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Delete solo lo puede hacer el autor.
func (s *Service) Delete(ctx context.Context, postID, requesterID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != requesterID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, postID)
}

// SetToggle antepone el voto de userID en la lista kind.
func (s *Service) SetToggle(ctx context.Context, postID, userID string, kind ToggleKind) (Post, error) {
	return s.toggle(ctx, postID, kind, "set", func(l ToggleList) (ToggleList, error) {
		return l.Add(ToggleEntry{ID: uuid.NewString(), UserID: userID})
	})
}

// ClearToggle quita el voto de userID de la lista kind.
func (s *Service) ClearToggle(ctx context.Context, postID, userID string, kind ToggleKind) (Post, error) {
	legacy := s.legacyClear && (kind == SpayNeutered || kind == GIStasis)
	return s.toggle(ctx, postID, kind, "clear", func(l ToggleList) (ToggleList, error) {
		if legacy {
			return nil, ErrInvalidState
		}
		return l.Remove(userID)
	})
}

func (s *Service) toggle(ctx context.Context, postID string, kind ToggleKind, op string, fn func(ToggleList) (ToggleList, error)) (Post, error) {
	p, err := s.applyToggle(ctx, postID, kind, fn)
	metrics.ToggleOperations.WithLabelValues(kind.String(), op, toggleResult(err)).Inc()
	return p, err
}

func (s *Service) applyToggle(ctx context.Context, postID string, kind ToggleKind, fn func(ToggleList) (ToggleList, error)) (Post, error) {
	if _, ok := kindTable[kind]; !ok {
		return Post{}, ErrUnknownKind
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		cur, err := s.Get(ctx, postID)
		if err != nil {
			return Post{}, err
		}

		next := cur.Clone()
		list, err := fn(next.Toggles[kind])
		if err != nil {
			return Post{}, err
		}
		next.Toggles[kind] = list

		err = s.repo.Update(ctx, next)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if err != nil {
			return Post{}, fmt.Errorf("update post: %w", err)
		}
		next.Version++
		return next, nil
	}
	return Post{}, ErrVersionConflict
}

func toggleResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrVersionConflict):
		return "version_conflict"
	default:
		return "error"
	}
}

func window(userID string, page, size int) ListFilter {
	if page < 1 {
		page = 1
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/size {
		offset = (page - 1) * size
	}
	return ListFilter{UserID: userID, Offset: offset, Limit: size}
}
