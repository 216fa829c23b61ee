package books

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func useEmbedded() error {
	goose.SetBaseFS(migrations)
	return goose.SetDialect("postgres")
}

// Migrate runs a goose command (up, down, status) against db using the
// embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	if err := useEmbedded(); err != nil {
		return err
	}
	switch command {
	case "up":
		return goose.UpContext(ctx, db, migrationsDir)
	case "down":
		return goose.DownContext(ctx, db, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q: want up, down or status", command)
	}
}
