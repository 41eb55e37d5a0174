package posts

import (
	"context"

	"pet-vet-reviews/internal/domain/users"
)

type ListFilter struct {
	UserID string // vacío: todos
	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)

	// Update reemplaza el post solo si la versión guardada es p.Version,
	// y la incrementa. Si no coincide devuelve ErrVersionConflict.
	Update(ctx context.Context, p Post) error

	Delete(ctx context.Context, id string) error

	// List ordena por fecha descendente.
	List(ctx context.Context, f ListFilter) (Page, error)
}

// UserLookup resuelve el autor al crear un post. Lo satisface *users.Service.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}
