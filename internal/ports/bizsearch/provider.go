package bizsearch

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("business search provider not configured")
	ErrUnauthorized  = errors.New("business search provider unauthorized")
	ErrUpstream      = errors.New("business search upstream error")
)

type SearchQuery struct {
	Term       string
	Location   string
	Categories []string
	Limit      int
}

type Business struct {
	ID             string
	Name           string
	ImageURL       string
	Rating         float64
	DisplayPhone   string
	Distance       float64
	DisplayAddress []string
	IsClosed       bool
}

type Review struct {
	Text        string
	Rating      float64
	TimeCreated string
}

// Provider es el buscador externo de negocios (veterinarias).
type Provider interface {
	Search(ctx context.Context, q SearchQuery) ([]Business, error)
	Reviews(ctx context.Context, businessID string) ([]Review, error)
}
