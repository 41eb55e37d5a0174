// Command migrate aplica las migraciones SQL de migrations/ sobre DB_DSN.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
package main

import (
	"errors"
	"os"
	"path/filepath"

	"pet-vet-reviews/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New(logger.Options{App: "migrate"})

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found", nil)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Error("DB_DSN environment variable is required", nil)
		os.Exit(1)
	}

	dir, err := findMigrations()
	if err != nil {
		log.Error("migrations directory not found", logger.Fields{"error": err})
		os.Exit(1)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dsn)
	if err != nil {
		log.Error("init migrate", logger.Fields{"error": err})
		os.Exit(1)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "down":
		err = m.Down()
	case "up":
		err = m.Up()
	default:
		log.Error("unknown command, use up or down", logger.Fields{"command": cmd})
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("migration failed", logger.Fields{"command": cmd, "error": err})
		os.Exit(1)
	}
	log.Info("migration done", logger.Fields{"command": cmd, "dir": dir})
}

// findMigrations sube desde el cwd hasta encontrar migrations/.
func findMigrations() (string, error) {
	cur, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		candidate := filepath.Join(cur, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return "", os.ErrNotExist
}
