// Command snapshot exports every stored book as JSON to an S3-compatible bucket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/5w1tchy/books-service/internal/bootstrap"
	"github.com/5w1tchy/books-service/internal/books"
	"github.com/5w1tchy/books-service/internal/config"
	"github.com/5w1tchy/books-service/internal/logging"
	"github.com/5w1tchy/books-service/internal/storage/s3"
)

func main() {
	presign := flag.Duration("presign", 0, "print a download URL valid for this long (0 disables)")
	flag.Parse()

	if err := run(*presign); err != nil {
		slog.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
}

func run(presign time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Snapshot.Bucket == "" {
		return errors.New("SNAPSHOT_BUCKET is required")
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(context.Background())

	list, err := books.NewService(st, log).List(ctx)
	if err != nil {
		return err
	}

	up, err := s3.NewUploader(ctx, s3.Options{
		Bucket:          cfg.Snapshot.Bucket,
		Region:          cfg.Snapshot.Region,
		Endpoint:        cfg.Snapshot.Endpoint,
		AccessKeyID:     cfg.Snapshot.AccessKeyID,
		SecretAccessKey: cfg.Snapshot.SecretAccessKey,
	})
	if err != nil {
		return err
	}

	key := SnapshotKey(time.Now())
	if err := up.PutJSON(ctx, key, list); err != nil {
		return err
	}
	log.Info("snapshot uploaded", "bucket", up.Bucket(), "key", key, "books", len(list))

	if presign > 0 {
		url, err := up.PresignDownloadURL(ctx, key, presign)
		if err != nil {
			return err
		}
		fmt.Println(url)
	}
	return nil
}

// SnapshotKey names the object for a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return "books/snapshot-" + t.UTC().Format("20060102T150405Z") + ".json"
}
