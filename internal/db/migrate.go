package db

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies every .sql file in migrationsDir in name order,
// falling back to the embedded set when the directory is unset or absent.
// Statements use IF NOT EXISTS so reruns are no-ops.
func RunMigrations(ctx context.Context, db *sql.DB, migrationsDir string) error {
	src, err := migrationSource(migrationsDir)
	if err != nil {
		return err
	}
	names, err := fs.Glob(src, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := fs.ReadFile(src, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationSource(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			return os.DirFS(dir), nil
		case err == nil:
			return nil, fmt.Errorf("migrations path %s is not a directory", dir)
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read migrations: %w", err)
		}
	}
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}
	return sub, nil
}
