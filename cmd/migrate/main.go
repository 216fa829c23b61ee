// Command migrate applies the PostgreSQL schema migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/5w1tchy/books-service/internal/config"
	"github.com/5w1tchy/books-service/internal/logging"
	storebooks "github.com/5w1tchy/books-service/internal/store/books"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status")
	flag.Parse()

	if err := run(*command); err != nil {
		slog.Error("migrate failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return errors.New("migrations only apply to STORE_DRIVER=postgres")
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	_, db, err := storebooks.Open(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storebooks.Migrate(ctx, db, command); err != nil {
		return err
	}
	log.Info("migrations done", "command", command)
	return nil
}
