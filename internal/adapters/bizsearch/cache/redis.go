// Package cache envuelve un bizsearch.Provider con cache-aside en Redis.
// Los errores de Redis nunca hacen fallar la búsqueda: se loguean y se va al proveedor.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-vet-reviews/internal/platform/logger"
	"pet-vet-reviews/internal/platform/metrics"
	"pet-vet-reviews/internal/ports/bizsearch"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 10 * time.Minute

	keyPrefix = "bizsearch:"
)

// Connect acepta redis://... o host:port y verifica la conexión con PING.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type Provider struct {
	next   bizsearch.Provider
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func New(next bizsearch.Provider, client *redis.Client, ttl time.Duration, log logger.Logger) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Provider{next: next, client: client, ttl: ttl, log: log}
}

func (p *Provider) Search(ctx context.Context, q bizsearch.SearchQuery) ([]bizsearch.Business, error) {
	var out []bizsearch.Business
	err := p.aside(ctx, "search", searchKey(q), &out, func() error {
		var err error
		out, err = p.next.Search(ctx, q)
		return err
	})
	return out, err
}

func (p *Provider) Reviews(ctx context.Context, businessID string) ([]bizsearch.Review, error) {
	var out []bizsearch.Review
	err := p.aside(ctx, "reviews", keyPrefix+"reviews:"+businessID, &out, func() error {
		var err error
		out, err = p.next.Reviews(ctx, businessID)
		return err
	})
	return out, err
}

// aside busca key en Redis; si no está llama a fetch (que debe llenar dest) y guarda el resultado.
func (p *Provider) aside(ctx context.Context, op, key string, dest any, fetch func() error) error {
	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, dest); jerr == nil {
			metrics.CacheLookups.WithLabelValues(op, "hit").Inc()
			return nil
		}
		metrics.CacheLookups.WithLabelValues(op, "error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues(op, "miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues(op, "error").Inc()
		p.log.Warn("bizsearch cache get failed", logger.Fields{"key": key, "err": err})
	}

	if err := fetch(); err != nil {
		return err
	}

	b, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := p.client.Set(ctx, key, b, p.ttl).Err(); err != nil {
		p.log.Warn("bizsearch cache set failed", logger.Fields{"key": key, "err": err})
	}
	return nil
}

func searchKey(q bizsearch.SearchQuery) string {
	parts := []string{
		strings.ToLower(q.Term),
		strings.ToLower(q.Location),
		strings.ToLower(strings.Join(q.Categories, ",")),
		strconv.Itoa(q.Limit),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return keyPrefix + "search:" + hex.EncodeToString(sum[:])
}
