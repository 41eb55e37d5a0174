package router

import (
	"context"
	"fmt"

	"pet-vet-reviews/internal/adapters/bizsearch/cache"
	"pet-vet-reviews/internal/adapters/bizsearch/yelp"
	"pet-vet-reviews/internal/config"
	"pet-vet-reviews/internal/platform/logger"
	"pet-vet-reviews/internal/ports/bizsearch"
)

// OpenProvider arma el cliente Yelp y, si hay REDIS_URL, lo envuelve con cache.
// Redis caído al arrancar no es fatal: se sigue sin cache.
func OpenProvider(ctx context.Context, cfg *config.Config, log logger.Logger) (bizsearch.Provider, func(), error) {
	noop := func() {}

	client, err := yelp.NewClient(yelp.Config{
		BaseURL: cfg.YelpBaseURL,
		APIKey:  cfg.YelpAPIKey,
		Timeout: cfg.YelpTimeout,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("yelp client: %w", err)
	}
	if !client.IsConfigured() {
		log.Warn("YELP_API_KEY not set, business search will fail", nil)
	}

	if cfg.RedisURL == "" {
		return client, noop, nil
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, business search runs uncached", logger.Fields{"error": err})
		return client, noop, nil
	}
	log.Info("business search cache enabled", logger.Fields{"ttl": cfg.YelpCacheTTL.String()})
	return cache.New(client, rdb, cfg.YelpCacheTTL, log), func() { _ = rdb.Close() }, nil
}
