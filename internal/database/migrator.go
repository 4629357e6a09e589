package database

import (
	"fmt"
	"os"
	"path/filepath"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
)

// RunMigrations brings the schema up to date. An already-current schema is
// not an error.
func RunMigrations(cfg *config.DatabaseConfig) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.GetURL())
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// migrationsDir resolves the migrations directory, honouring MIGRATIONS_PATH
// so containers can mount the files elsewhere.
func migrationsDir() (string, error) {
	dir := os.Getenv("MIGRATIONS_PATH")
	if dir == "" {
		dir = "migrations"
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("migrations directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("migrations path %s is not a directory", abs)
	}
	return abs, nil
}
