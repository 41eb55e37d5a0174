package router

import (
	"net/http"

	"pet-vet-reviews/internal/adapters/auth/jwtauth"
	"pet-vet-reviews/internal/adapters/auth/password"
	"pet-vet-reviews/internal/adapters/bizsearch/yelp"
	mem "pet-vet-reviews/internal/adapters/storage/memory"
	"pet-vet-reviews/internal/domain/businesses"
	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"
	"pet-vet-reviews/internal/middleware"
	"pet-vet-reviews/internal/platform/logger"
	"pet-vet-reviews/internal/platform/metrics"
	"pet-vet-reviews/internal/ports/auth"
	"pet-vet-reviews/internal/ports/bizsearch"

	_ "pet-vet-reviews/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
)

// TokenManager emite y verifica los bearer tokens.
type TokenManager interface {
	auth.TokenIssuer
	auth.AuthVerifier
}

type Options struct {
	Logger logger.Logger

	// Si es nil se usa un secreto efímero (los tokens mueren con el proceso).
	Tokens TokenManager

	// Storage vacío = in-memory.
	Storage Storage

	// Si es nil se usa un cliente Yelp sin API key (búsquedas fallan con 500).
	Provider bizsearch.Provider

	BcryptCost              int
	PostsLegacyClearCompare bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	tokens := opts.Tokens
	if tokens == nil {
		m, err := jwtauth.NewManager(jwtauth.Config{Secret: uuid.NewString()})
		if err != nil {
			panic(err)
		}
		log.Warn("no token manager configured, using ephemeral secret", nil)
		tokens = m
	}

	store := opts.Storage
	if !store.complete() {
		store = MemoryStorage(mem.NewStore())
	}

	provider := opts.Provider
	if provider == nil {
		c, err := yelp.NewClient(yelp.Config{})
		if err != nil {
			panic(err)
		}
		provider = c
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Use(middleware.AuthContext(tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	usersSvc := users.NewService(store.Users, password.NewBcryptHasher(opts.BcryptCost), tokens)
	profilesSvc := profiles.NewService(store.Profiles, store.Accounts, store.Users)
	postsSvc := posts.NewService(store.Posts, store.Users, posts.Options{
		LegacyClearCompare: opts.PostsLegacyClearCompare,
	})
	bizSvc := businesses.NewService(provider)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, log)
	profiles.RegisterRoutes(r, profilesSvc, log)
	posts.RegisterRoutes(r, postsSvc, log)
	businesses.RegisterRoutes(r, bizSvc, log)

	return r
}
