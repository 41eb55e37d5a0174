package users

import "context"

// Repository devuelve ErrNotFound si no existe y ErrEmailTaken en Create duplicado.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
