package router

import (
	"context"
	"fmt"

	mem "pet-vet-reviews/internal/adapters/storage/memory"
	"pet-vet-reviews/internal/adapters/storage/mongodb"
	pg "pet-vet-reviews/internal/adapters/storage/postgres"
	"pet-vet-reviews/internal/config"
	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"
	"pet-vet-reviews/internal/platform/logger"
)

// Storage agrupa los repos de un mismo backend. Accounts borra usuario, perfil
// y posts de forma atómica.
type Storage struct {
	Users    users.Repository
	Profiles profiles.Repository
	Posts    posts.Repository
	Accounts profiles.AccountRemover
}

func (s Storage) complete() bool {
	return s.Users != nil && s.Profiles != nil && s.Posts != nil && s.Accounts != nil
}

func MemoryStorage(s *mem.Store) Storage {
	return Storage{Users: s.Users(), Profiles: s.Profiles(), Posts: s.Posts(), Accounts: s}
}

func PostgresStorage(s *pg.Store) Storage {
	return Storage{Users: s.Users(), Profiles: s.Profiles(), Posts: s.Posts(), Accounts: s}
}

func MongoStorage(s *mongodb.Store) Storage {
	return Storage{Users: s.Users(), Profiles: s.Profiles(), Posts: s.Posts(), Accounts: s}
}

// OpenStorage conecta el backend elegido por STORAGE_DRIVER. El close devuelto
// nunca es nil.
func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (Storage, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return Storage{}, noop, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("storage ready", logger.Fields{"driver": cfg.StorageDriver})
		return PostgresStorage(pg.NewStore(db)), func() { _ = db.Close() }, nil

	case config.StorageMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return Storage{}, noop, fmt.Errorf("connect mongo: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		store := mongodb.NewStore(client, cfg.MongoDatabase)
		if err := store.EnsureIndexes(ctx); err != nil {
			closeFn()
			return Storage{}, noop, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info("storage ready", logger.Fields{"driver": cfg.StorageDriver, "database": cfg.MongoDatabase})
		return MongoStorage(store), closeFn, nil

	default:
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return MemoryStorage(mem.NewStore()), noop, nil
	}
}
