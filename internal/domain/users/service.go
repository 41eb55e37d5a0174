package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-vet-reviews/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPasswordTooLong = fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, MaxPasswordBytes)
)

// MaxPasswordBytes es el límite de bcrypt; se cuenta en bytes, no en runas.
const MaxPasswordBytes = 72

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	UserName string
}

// Register crea el usuario y devuelve un token ya emitido.
// El email es único: un duplicado devuelve ErrEmailTaken sin escribir nada.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidInput
	}
	if len(in.Password) > MaxPasswordBytes {
		return Session{}, ErrPasswordTooLong
	}

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return Session{}, ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		UserName:     strings.TrimSpace(in.UserName),
		CreatedAt:    s.now(),
	}
	// el índice único del store cubre la carrera entre GetByEmail y Create
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.session(u)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(u)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) session(u User) (Session, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: tok, User: u}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
