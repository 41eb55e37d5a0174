package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-vet-reviews/internal/adapters/auth/jwtauth"
	"pet-vet-reviews/internal/config"
	"pet-vet-reviews/internal/platform/logger"
	"pet-vet-reviews/internal/router"
)

// @title        Pet Vet Reviews API
// @version      1.0
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config", logger.Fields{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Env:    cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Fields{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := jwtauth.NewManager(jwtauth.Config{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL})
	if err != nil {
		return err
	}

	store, closeStore, err := router.OpenStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, closeProvider, err := router.OpenProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeProvider()

	r := router.NewRouter(router.Options{
		Logger:                  log,
		Tokens:                  tokens,
		Storage:                 store,
		Provider:                provider,
		PostsLegacyClearCompare: cfg.PostsLegacyClearCompare,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
