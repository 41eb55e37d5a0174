package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-vet-reviews/internal/ports/bizsearch"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUpstream     = errors.New("business search failed")
)

const DefaultLimit = 10

type Service struct {
	provider bizsearch.Provider
}

func NewService(provider bizsearch.Provider) *Service {
	return &Service{provider: provider}
}

type SearchInput struct {
	Term       string
	Location   string
	Categories string // lista separada por comas
	Limit      int
}

func (s *Service) Search(ctx context.Context, in SearchInput) ([]bizsearch.Business, error) {
	q := bizsearch.SearchQuery{
		Term:       strings.TrimSpace(in.Term),
		Location:   strings.TrimSpace(in.Location),
		Categories: splitCategories(in.Categories),
		Limit:      in.Limit,
	}
	if q.Location == "" {
		return nil, ErrInvalidInput
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}

	out, err := s.provider.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return out, nil
}

func (s *Service) Reviews(ctx context.Context, businessID string) ([]bizsearch.Review, error) {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.provider.Reviews(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return out, nil
}

func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
