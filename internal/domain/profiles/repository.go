package profiles

import (
	"context"

	"pet-vet-reviews/internal/domain/users"
)

type Repository interface {
	// Create devuelve ErrAlreadyExists si el usuario ya tiene perfil.
	Create(ctx context.Context, p Profile) error

	// Update reemplaza el documento solo si la versión guardada es p.Version,
	// y la incrementa. Si no coincide devuelve ErrVersionConflict.
	Update(ctx context.Context, p Profile) error

	GetByUser(ctx context.Context, userID string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
}

// AccountRemover borra posts, perfil y usuario como una sola unidad.
type AccountRemover interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// UserLookup lo satisface *users.Service.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}
