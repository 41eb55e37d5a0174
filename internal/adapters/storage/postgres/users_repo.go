package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-vet-reviews/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, user_name, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, u.ID, u.Email, u.PasswordHash, u.UserName, u.CreatedAt)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `
		SELECT id, email, password_hash, user_name, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, user_name, created_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg string) (users.User, error) {
	var u users.User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.UserName,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}
