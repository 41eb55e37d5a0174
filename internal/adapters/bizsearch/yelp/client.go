package yelp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-vet-reviews/internal/platform/httpclient"
	"pet-vet-reviews/internal/platform/metrics"
	"pet-vet-reviews/internal/ports/bizsearch"
)

const DefaultBaseURL = "https://api.yelp.com"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Transport se usa en tests.
	Transport http.RoundTripper
}

// Client implementa bizsearch.Provider contra la Fusion API de Yelp.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	h := http.Header{}
	if apiKey != "" {
		h.Set("Authorization", "Bearer "+apiKey)
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Header:    h,
	})
	if err != nil {
		return nil, fmt.Errorf("yelp: %w", err)
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type searchResponse struct {
	Businesses []struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		ImageURL     string  `json:"image_url"`
		Rating       float64 `json:"rating"`
		DisplayPhone string  `json:"display_phone"`
		Distance     float64 `json:"distance"`
		IsClosed     bool    `json:"is_closed"`
		Location     struct {
			DisplayAddress []string `json:"display_address"`
		} `json:"location"`
	} `json:"businesses"`
}

type reviewsResponse struct {
	Reviews []struct {
		Text        string  `json:"text"`
		Rating      float64 `json:"rating"`
		TimeCreated string  `json:"time_created"`
	} `json:"reviews"`
}

func (c *Client) Search(ctx context.Context, q bizsearch.SearchQuery) ([]bizsearch.Business, error) {
	if !c.IsConfigured() {
		return nil, bizsearch.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("location", q.Location)
	if q.Term != "" {
		params.Set("term", q.Term)
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp searchResponse
	if err := c.get(ctx, "search", "/v3/businesses/search", params, &resp); err != nil {
		return nil, err
	}

	out := make([]bizsearch.Business, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		out = append(out, bizsearch.Business{
			ID:             b.ID,
			Name:           b.Name,
			ImageURL:       b.ImageURL,
			Rating:         b.Rating,
			DisplayPhone:   b.DisplayPhone,
			Distance:       b.Distance,
			DisplayAddress: b.Location.DisplayAddress,
			IsClosed:       b.IsClosed,
		})
	}
	return out, nil
}

func (c *Client) Reviews(ctx context.Context, businessID string) ([]bizsearch.Review, error) {
	if !c.IsConfigured() {
		return nil, bizsearch.ErrNotConfigured
	}
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, errors.New("businessID required")
	}

	var resp reviewsResponse
	if err := c.get(ctx, "reviews", "/v3/businesses/"+url.PathEscape(businessID)+"/reviews", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]bizsearch.Review, 0, len(resp.Reviews))
	for _, r := range resp.Reviews {
		out = append(out, bizsearch.Review{Text: r.Text, Rating: r.Rating, TimeCreated: r.TimeCreated})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	err := c.http.GetJSON(ctx, path, params, out)
	switch code := httpclient.StatusCode(err); {
	case err == nil:
		metrics.UpstreamRequests.WithLabelValues(op, "ok").Inc()
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		metrics.UpstreamRequests.WithLabelValues(op, "unauthorized").Inc()
		return fmt.Errorf("%w: %w", bizsearch.ErrUnauthorized, err)
	default:
		metrics.UpstreamRequests.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%w: %w", bizsearch.ErrUpstream, err)
	}
}
