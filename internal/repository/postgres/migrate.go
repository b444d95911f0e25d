package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog/log"
)

// Migrate applies every *.up.sql file of fsys in name order. The schema uses
// IF NOT EXISTS throughout, so running it twice is harmless.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		stmt, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		log.Debug().Str("migration", name).Msg("Applied migration")
	}

	return nil
}
